package repository

import (
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// DailyPartRepository define o porto de persistência do Livro de Alterações.
type DailyPartRepository interface {
	Create(part *entity.DailyPart) error
	GetByID(id string) (*entity.DailyPart, error)
	List() ([]*entity.DailyPart, error)
	Update(part *entity.DailyPart) error
	Delete(id string) error
}
