package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sentinela-pm/sentinela-api/internal/application/armory"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

var _ armory.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner sobre o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre uma transação, executa fn com repositórios atados a ela e faz
// Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	materials repository.MaterialRepository,
	cautelas repository.CautelaRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	materials := NewMaterialRepository(tx)
	cautelas := NewCautelaRepository(tx)

	if err := fn(materials, cautelas); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
