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

// PersonnelUseCase casos de uso CRUD do efetivo.
type PersonnelUseCase struct {
	repo        repository.PersonnelRepository
	cautelaRepo repository.CautelaRepository
	logRepo     repository.SystemLogRepository
}

// NewPersonnelUseCase constrói o caso de uso.
func NewPersonnelUseCase(repo repository.PersonnelRepository, cautelaRepo repository.CautelaRepository, logRepo repository.SystemLogRepository) *PersonnelUseCase {
	return &PersonnelUseCase{repo: repo, cautelaRepo: cautelaRepo, logRepo: logRepo}
}

// Create cadastra um policial. Matrícula é única.
func (uc *PersonnelUseCase) Create(armorerName string, in dto.CreatePersonnelRequest) (*dto.PersonnelResponse, error) {
	if in.Name == "" || in.Rank == "" || in.Matricula == "" {
		return nil, fmt.Errorf("nome, posto e matrícula são obrigatórios: %w", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByMatricula(in.Matricula)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("matrícula %s: %w", in.Matricula, domain.ErrMatriculaExists)
	}
	now := time.Now()
	p := &entity.Personnel{
		ID:        uuid.New().String(),
		Name:      in.Name,
		WarName:   in.WarName,
		Rank:      in.Rank,
		Numeral:   in.Numeral,
		Matricula: in.Matricula,
		Area:      in.Area,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	uc.audit(armorerName, "CADASTRO_EFETIVO", fmt.Sprintf("%s (matrícula %s)", p.DisplayName(), p.Matricula))
	return toPersonnelResponse(p), nil
}

// GetByID busca um policial.
func (uc *PersonnelUseCase) GetByID(id string) (*dto.PersonnelResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return toPersonnelResponse(p), nil
}

// List devolve o efetivo, com busca textual insensível a acento sobre nome,
// nome de guerra e matrícula.
func (uc *PersonnelUseCase) List(query string) (*dto.PersonnelListResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := &dto.PersonnelListResponse{Items: make([]dto.PersonnelResponse, 0, len(list))}
	for _, p := range list {
		if !matches(query, p.Name, p.WarName, p.Matricula) {
			continue
		}
		out.Items = append(out.Items, *toPersonnelResponse(p))
	}
	out.Total = len(out.Items)
	return out, nil
}

// Update atualiza um policial (campos opcionais).
func (uc *PersonnelUseCase) Update(armorerName, id string, in dto.UpdatePersonnelRequest) (*dto.PersonnelResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if in.Matricula != nil && *in.Matricula != p.Matricula {
		existing, err := uc.repo.GetByMatricula(*in.Matricula)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != p.ID {
			return nil, fmt.Errorf("matrícula %s: %w", *in.Matricula, domain.ErrMatriculaExists)
		}
		p.Matricula = *in.Matricula
	}
	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.WarName != nil {
		p.WarName = *in.WarName
	}
	if in.Rank != nil {
		p.Rank = *in.Rank
	}
	if in.Numeral != nil {
		p.Numeral = *in.Numeral
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if in.Active != nil {
		// Desativar não fecha cautelas abertas; só bloqueia novas saídas.
		p.Active = *in.Active
	}
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	uc.audit(armorerName, "EDICAO_EFETIVO", fmt.Sprintf("%s (matrícula %s)", p.DisplayName(), p.Matricula))
	return toPersonnelResponse(p), nil
}

// Delete remove um policial do efetivo. Com cautela aberta a exclusão é
// bloqueada; o histórico fechado permanece íntegro porque as cautelas guardam
// snapshot do nome.
func (uc *PersonnelUseCase) Delete(armorerName, id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	open, err := uc.cautelaRepo.Search(repository.CautelaFilter{PersonnelID: id, Status: entity.CautelaAberta, Limit: 1})
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return fmt.Errorf("policial com cautela aberta (%s): %w", open[0].ID, domain.ErrConflict)
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.audit(armorerName, "EXCLUSAO_EFETIVO", fmt.Sprintf("%s (matrícula %s)", p.DisplayName(), p.Matricula))
	return nil
}

func (uc *PersonnelUseCase) audit(armorerName, action, details string) {
	_ = uc.logRepo.Create(&entity.SystemLog{
		ID:          uuid.New().String(),
		ArmorerName: armorerName,
		Action:      action,
		Details:     details,
		Timestamp:   time.Now(),
	})
}

func toPersonnelResponse(p *entity.Personnel) *dto.PersonnelResponse {
	return &dto.PersonnelResponse{
		ID:          p.ID,
		Name:        p.Name,
		WarName:     p.WarName,
		Rank:        p.Rank,
		Numeral:     p.Numeral,
		Matricula:   p.Matricula,
		Area:        p.Area,
		Active:      p.Active,
		DisplayName: p.DisplayName(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
