package repository

import (
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// MaterialRepository define o porto de persistência do acervo (DIP).
type MaterialRepository interface {
	Create(material *entity.Material) error
	GetByID(id string) (*entity.Material, error)
	// GetForUpdate bloqueia a linha (SELECT FOR UPDATE); usar dentro de transação.
	GetForUpdate(id string) (*entity.Material, error)
	GetBySerialNumber(serial string) (*entity.Material, error)
	List() ([]*entity.Material, error)
	ListByCategory(category string) ([]*entity.Material, error)
	Update(material *entity.Material) error
	Delete(id string) error
	CountByStatus() (map[string]int, error)
}
