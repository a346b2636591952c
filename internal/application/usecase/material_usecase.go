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

// MaterialUseCase casos de uso CRUD do acervo. Saída e devolução mexem no
// status via livro de cautelas, nunca por aqui.
type MaterialUseCase struct {
	repo        repository.MaterialRepository
	cautelaRepo repository.CautelaRepository
	logRepo     repository.SystemLogRepository
}

// NewMaterialUseCase constrói o caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository, cautelaRepo repository.CautelaRepository, logRepo repository.SystemLogRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo, cautelaRepo: cautelaRepo, logRepo: logRepo}
}

// Create cadastra um material. Número de série é único nas categorias que o
// exigem; itens novos entram DISPONIVEL.
func (uc *MaterialUseCase) Create(armorerName string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if !entity.ValidCategory(in.Category) {
		return nil, fmt.Errorf("categoria %q: %w", in.Category, domain.ErrInvalidInput)
	}
	if entity.SerialRequired(in.Category) {
		if in.SerialNumber == "" {
			return nil, fmt.Errorf("número de série é obrigatório para %s: %w", in.Category, domain.ErrInvalidInput)
		}
		existing, err := uc.repo.GetBySerialNumber(in.SerialNumber)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("número de série %s já cadastrado: %w", in.SerialNumber, domain.ErrDuplicate)
		}
	}
	qty := in.Quantity
	if !entity.QuantityEditable(in.Category) || qty <= 0 {
		qty = 1
	}
	now := time.Now()
	material := &entity.Material{
		ID:           uuid.New().String(),
		Category:     in.Category,
		Type:         in.Type,
		Model:        in.Model,
		SerialNumber: in.SerialNumber,
		Manufacturer: in.Manufacturer,
		Caliber:      in.Caliber,
		Condition:    in.Condition,
		Status:       entity.StatusDisponivel,
		Location:     in.Location,
		Quantity:     qty,
		ExpiryDate:   in.ExpiryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(material); err != nil {
		return nil, err
	}
	uc.audit(armorerName, "CADASTRO_MATERIAL", fmt.Sprintf("%s %s (série %s)", material.Category, material.Model, material.SerialNumber))
	return toMaterialResponse(material), nil
}

// GetByID busca um material.
func (uc *MaterialUseCase) GetByID(id string) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	return toMaterialResponse(m), nil
}

// List devolve o acervo, com filtro opcional por categoria e busca textual
// insensível a acento sobre tipo, modelo e número de série.
func (uc *MaterialUseCase) List(category, query string) (*dto.MaterialListResponse, error) {
	var (
		list []*entity.Material
		err  error
	)
	if category != "" {
		list, err = uc.repo.ListByCategory(category)
	} else {
		list, err = uc.repo.List()
	}
	if err != nil {
		return nil, err
	}
	out := &dto.MaterialListResponse{Items: make([]dto.MaterialResponse, 0, len(list))}
	for _, m := range list {
		if !matches(query, m.Type, m.Model, m.SerialNumber, m.Manufacturer) {
			continue
		}
		out.Items = append(out.Items, *toMaterialResponse(m))
	}
	out.Total = len(out.Items)
	return out, nil
}

// Update atualiza um material. Mudança de status para CAUTELADO é proibida
// aqui; ajustes administrativos (MANUTENCAO, RETIDO, EXTRAVIADO, DISPONIVEL)
// são permitidos desde que o item não esteja em cautela aberta.
func (uc *MaterialUseCase) Update(armorerName, id string, in dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, nil
	}
	if in.Status != nil && *in.Status != m.Status {
		if !entity.ValidStatus(*in.Status) || *in.Status == entity.StatusCautelado {
			return nil, fmt.Errorf("status %q: %w", *in.Status, domain.ErrInvalidInput)
		}
		if m.Status == entity.StatusCautelado {
			return nil, fmt.Errorf("material em cautela aberta: %w", domain.ErrConflict)
		}
		m.Status = *in.Status
	}
	if in.Type != nil {
		m.Type = *in.Type
	}
	if in.Model != nil {
		m.Model = *in.Model
	}
	if in.SerialNumber != nil && *in.SerialNumber != m.SerialNumber {
		if entity.SerialRequired(m.Category) {
			existing, err := uc.repo.GetBySerialNumber(*in.SerialNumber)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != m.ID {
				return nil, fmt.Errorf("número de série %s já cadastrado: %w", *in.SerialNumber, domain.ErrDuplicate)
			}
		}
		m.SerialNumber = *in.SerialNumber
	}
	if in.Manufacturer != nil {
		m.Manufacturer = *in.Manufacturer
	}
	if in.Caliber != nil {
		m.Caliber = *in.Caliber
	}
	if in.Condition != nil {
		m.Condition = *in.Condition
	}
	if in.Location != nil {
		m.Location = *in.Location
	}
	if in.Quantity != nil {
		if !entity.QuantityEditable(m.Category) {
			return nil, fmt.Errorf("quantidade só é editável em categorias consumíveis: %w", domain.ErrInvalidInput)
		}
		if *in.Quantity < 0 {
			return nil, fmt.Errorf("quantidade negativa: %w", domain.ErrInvalidInput)
		}
		m.Quantity = *in.Quantity
	}
	if in.ExpiryDate != nil {
		m.ExpiryDate = in.ExpiryDate
	}
	m.Normalize()
	m.UpdatedAt = time.Now()
	if err := uc.repo.Update(m); err != nil {
		return nil, err
	}
	uc.audit(armorerName, "EDICAO_MATERIAL", fmt.Sprintf("%s (série %s)", m.Model, m.SerialNumber))
	return toMaterialResponse(m), nil
}

// Delete remove um material do acervo. Item em cautela aberta não pode ser
// excluído sem antes ser devolvido.
func (uc *MaterialUseCase) Delete(armorerName, id string) error {
	m, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if m == nil {
		return domain.ErrNotFound
	}
	open, err := uc.cautelaRepo.Search(repository.CautelaFilter{MaterialID: id, Status: entity.CautelaAberta, Limit: 1})
	if err != nil {
		return err
	}
	if len(open) > 0 {
		return fmt.Errorf("material em cautela aberta (%s): %w", open[0].ID, domain.ErrConflict)
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	uc.audit(armorerName, "EXCLUSAO_MATERIAL", fmt.Sprintf("%s %s (série %s)", m.Category, m.Model, m.SerialNumber))
	return nil
}

func (uc *MaterialUseCase) audit(armorerName, action, details string) {
	_ = uc.logRepo.Create(&entity.SystemLog{
		ID:          uuid.New().String(),
		ArmorerName: armorerName,
		Action:      action,
		Details:     details,
		Timestamp:   time.Now(),
	})
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:           m.ID,
		Category:     m.Category,
		Type:         m.Type,
		Model:        m.Model,
		SerialNumber: m.SerialNumber,
		Manufacturer: m.Manufacturer,
		Caliber:      m.Caliber,
		Condition:    m.Condition,
		Status:       m.Status,
		PersonnelID:  m.PersonnelID,
		Location:     m.Location,
		Quantity:     m.Quantity,
		ExpiryDate:   m.ExpiryDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
