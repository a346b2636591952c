package repository

import (
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// PersonnelRepository define o porto de persistência do efetivo (DIP).
type PersonnelRepository interface {
	Create(p *entity.Personnel) error
	GetByID(id string) (*entity.Personnel, error)
	GetByMatricula(matricula string) (*entity.Personnel, error)
	List() ([]*entity.Personnel, error)
	Update(p *entity.Personnel) error
	Delete(id string) error
}
