package repository

import (
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// UserRepository define o porto de persistência de armeiros/administradores.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByMatricula(matricula string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
	Count() (int, error)
}
