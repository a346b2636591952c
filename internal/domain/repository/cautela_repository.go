package repository

import (
	"time"

	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// CautelaFilter critérios opcionais de busca no histórico de cautelas.
// Campos zero são ignorados pela implementação.
type CautelaFilter struct {
	PersonnelID string
	MaterialID  string
	Status      string // ABERTA, FECHADA
	Area        string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// CautelaRepository define o porto de persistência do livro de cautelas.
// List e Search devolvem sempre em ordem de saída mais recente primeiro.
type CautelaRepository interface {
	Create(cautela *entity.Cautela) error
	GetByID(id string) (*entity.Cautela, error)
	// GetForUpdate bloqueia a linha (SELECT FOR UPDATE); usar dentro de transação.
	GetForUpdate(id string) (*entity.Cautela, error)
	List() ([]*entity.Cautela, error)
	ListOpen() ([]*entity.Cautela, error)
	Search(filter CautelaFilter) ([]*entity.Cautela, error)
	Update(cautela *entity.Cautela) error
	CountOpen() (int, error)
}
