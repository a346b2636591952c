package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

// PartExporter gera o documento de uma edição do livro (PDF ou Word).
type PartExporter interface {
	Render(part *entity.DailyPart, institution string) ([]byte, error)
}

// DailyPartUseCase casos de uso do Livro de Alterações (parte diária).
type DailyPartUseCase struct {
	repo         repository.DailyPartRepository
	settingsRepo repository.SettingsRepository
	logRepo      repository.SystemLogRepository
	pdf          PartExporter
	docx         PartExporter
}

// NewDailyPartUseCase constrói o caso de uso.
func NewDailyPartUseCase(
	repo repository.DailyPartRepository,
	settingsRepo repository.SettingsRepository,
	logRepo repository.SystemLogRepository,
	pdf PartExporter,
	docx PartExporter,
) *DailyPartUseCase {
	return &DailyPartUseCase{repo: repo, settingsRepo: settingsRepo, logRepo: logRepo, pdf: pdf, docx: docx}
}

// Create abre uma nova edição em rascunho. Autor vem do token de sessão.
func (uc *DailyPartUseCase) Create(authorID, authorName string, in dto.SaveDailyPartRequest) (*dto.DailyPartResponse, error) {
	now := time.Now()
	part := &entity.DailyPart{
		ID:         uuid.New().String(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Status:     entity.PartRascunho,
		Content:    in.Content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	uc.audit(authorName, "CRIACAO_PARTE_DIARIA", fmt.Sprintf("Edição %s criada em rascunho", part.ID))
	return toDailyPartResponse(part), nil
}

// Update substitui o conteúdo de um rascunho. Edição FINALIZADA é imutável.
func (uc *DailyPartUseCase) Update(armorerName, id string, in dto.SaveDailyPartRequest) (*dto.DailyPartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	if part.Status == entity.PartFinalizada {
		return nil, fmt.Errorf("parte diária finalizada é imutável: %w", domain.ErrConflict)
	}
	part.Content = in.Content
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	return toDailyPartResponse(part), nil
}

// Finalize assina e encerra a edição. Assinatura obrigatória; a transição
// RASCUNHO para FINALIZADA é terminal.
func (uc *DailyPartUseCase) Finalize(armorerName, id string, in dto.FinalizeDailyPartRequest) (*dto.DailyPartResponse, error) {
	if in.Signature == "" {
		return nil, fmt.Errorf("finalização da parte diária: %w", domain.ErrMissingSignature)
	}
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	if part.Status == entity.PartFinalizada {
		return nil, fmt.Errorf("parte diária já finalizada: %w", domain.ErrConflict)
	}
	part.Status = entity.PartFinalizada
	part.Signature = in.Signature
	part.UpdatedAt = time.Now()
	if err := uc.repo.Update(part); err != nil {
		return nil, err
	}
	uc.audit(armorerName, "FINALIZACAO_PARTE_DIARIA", fmt.Sprintf("Edição %s finalizada", part.ID))
	return toDailyPartResponse(part), nil
}

// GetByID busca uma edição.
func (uc *DailyPartUseCase) GetByID(id string) (*dto.DailyPartResponse, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	return toDailyPartResponse(part), nil
}

// List devolve as edições, mais recente primeiro.
func (uc *DailyPartUseCase) List() (*dto.DailyPartListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.DailyPartListResponse{Items: make([]dto.DailyPartResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, *toDailyPartResponse(p))
	}
	out.Total = len(out.Items)
	return out, nil
}

// Delete remove um rascunho. Edição finalizada integra o registro histórico
// e não pode ser excluída.
func (uc *DailyPartUseCase) Delete(armorerName, id string) error {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	if part.Status == entity.PartFinalizada {
		return fmt.Errorf("parte diária finalizada não pode ser excluída: %w", domain.ErrConflict)
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.audit(armorerName, "EXCLUSAO_PARTE_DIARIA", fmt.Sprintf("Rascunho %s excluído", id))
	return nil
}

// ExportPDF gera o PDF da edição.
func (uc *DailyPartUseCase) ExportPDF(id string) ([]byte, error) {
	return uc.export(id, uc.pdf)
}

// ExportDocx gera o documento Word (.docx) da edição.
func (uc *DailyPartUseCase) ExportDocx(id string) ([]byte, error) {
	return uc.export(id, uc.docx)
}

func (uc *DailyPartUseCase) export(id string, exp PartExporter) ([]byte, error) {
	part, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, fmt.Errorf("parte diária %s: %w", id, domain.ErrNotFound)
	}
	settings, err := uc.settingsRepo.Get()
	if err != nil {
		return nil, err
	}
	institution := ""
	if settings != nil {
		institution = settings.InstitutionName
	}
	return exp.Render(part, institution)
}

func (uc *DailyPartUseCase) audit(armorerName, action, details string) {
	_ = uc.logRepo.Create(&entity.SystemLog{
		ID:          uuid.New().String(),
		ArmorerName: armorerName,
		Action:      action,
		Details:     details,
		Timestamp:   time.Now(),
	})
}

func toDailyPartResponse(p *entity.DailyPart) *dto.DailyPartResponse {
	return &dto.DailyPartResponse{
		ID:         p.ID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Status:     p.Status,
		Signature:  p.Signature,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
