package armory

import (
	"context"

	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa transação. Garante atomicidade entre o livro de
// cautelas e o acervo: Commit se fn devolve nil, Rollback caso contrário.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materials repository.MaterialRepository,
		cautelas repository.CautelaRepository,
	) error) error
}
