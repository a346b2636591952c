package usecase

import (
	"fmt"
	"time"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

// ImageNormalizer redimensiona e reencoda uma imagem em data-URL para o
// formato canônico de armazenamento (JPEG limitado).
type ImageNormalizer interface {
	NormalizeDataURL(dataURL string, maxDim int) (string, error)
}

// Lado máximo da logomarca institucional após normalização.
const logoMaxDim = 512

// SettingsUseCase configurações da aplicação (linha única).
type SettingsUseCase struct {
	repo       repository.SettingsRepository
	normalizer ImageNormalizer
}

// NewSettingsUseCase constrói o caso de uso.
func NewSettingsUseCase(repo repository.SettingsRepository, normalizer ImageNormalizer) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, normalizer: normalizer}
}

// Get devolve as configurações vigentes; se nunca foram salvas, os padrões.
func (uc *SettingsUseCase) Get() (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		defaults := entity.DefaultSettings("")
		s = &defaults
	}
	return &dto.SettingsResponse{Settings: *s}, nil
}

// Update aplica mudanças parciais. Logomarca passa pela normalização de
// imagem antes de ser persistida.
func (uc *SettingsUseCase) Update(in dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	s, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if s == nil {
		defaults := entity.DefaultSettings("")
		s = &defaults
	}
	if in.InstitutionName != nil {
		if *in.InstitutionName == "" {
			return nil, fmt.Errorf("nome da instituição vazio: %w", domain.ErrInvalidInput)
		}
		s.InstitutionName = *in.InstitutionName
	}
	if in.InstitutionLogo != nil {
		if *in.InstitutionLogo == "" {
			s.InstitutionLogo = ""
		} else {
			normalized, err := uc.normalizer.NormalizeDataURL(*in.InstitutionLogo, logoMaxDim)
			if err != nil {
				return nil, fmt.Errorf("logomarca: %w: %w", err, domain.ErrInvalidInput)
			}
			s.InstitutionLogo = normalized
		}
	}
	if in.Theme != nil {
		if *in.Theme != "light" && *in.Theme != "dark" {
			return nil, fmt.Errorf("tema %q: %w", *in.Theme, domain.ErrInvalidInput)
		}
		s.Theme = *in.Theme
	}
	if in.GoogleDrive != nil {
		s.GoogleDrive = *in.GoogleDrive
	}
	if in.Backup != nil {
		switch in.Backup.Frequency {
		case entity.BackupNever, entity.BackupDaily, entity.BackupWeekly, entity.BackupMonthly:
		default:
			return nil, fmt.Errorf("frequência de backup %q: %w", in.Backup.Frequency, domain.ErrInvalidInput)
		}
		s.Backup = *in.Backup
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Save(s); err != nil {
		return nil, err
	}
	return &dto.SettingsResponse{Settings: *s}, nil
}

// MarkBackupDone registra a data do último backup bem-sucedido.
func (uc *SettingsUseCase) MarkBackupDone(at time.Time) error {
	s, err := uc.repo.Get()
	if err != nil {
		return err
	}
	if s == nil {
		defaults := entity.DefaultSettings("")
		s = &defaults
	}
	s.Backup.LastBackupDate = &at
	s.UpdatedAt = time.Now()
	return uc.repo.Save(s)
}
