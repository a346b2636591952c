package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sentinela-pm/sentinela-api/internal/application/backup"
)

var _ backup.Store = (*SnapshotStore)(nil)

// SnapshotStore lê e restaura o estado completo para o módulo de backup.
// A restauração substitui todas as tabelas em uma única transação.
type SnapshotStore struct {
	pool *pgxpool.Pool
}

// NewSnapshotStore constrói o adaptador.
func NewSnapshotStore(pool *pgxpool.Pool) *SnapshotStore {
	return &SnapshotStore{pool: pool}
}

// Export lê o estado completo da aplicação.
func (s *SnapshotStore) Export(ctx context.Context) (*backup.Snapshot, error) {
	snap := &backup.Snapshot{}

	materials, err := NewMaterialRepository(s.pool).List()
	if err != nil {
		return nil, err
	}
	for _, m := range materials {
		snap.Materials = append(snap.Materials, *m)
	}

	personnel, err := NewPersonnelRepository(s.pool).List()
	if err != nil {
		return nil, err
	}
	for _, p := range personnel {
		snap.Personnel = append(snap.Personnel, *p)
	}

	cautelas, err := NewCautelaRepository(s.pool).List()
	if err != nil {
		return nil, err
	}
	for _, c := range cautelas {
		snap.Cautelas = append(snap.Cautelas, *c)
	}

	users, err := NewUserRepository(s.pool).List()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		snap.Users = append(snap.Users, *u)
	}

	parts, err := NewDailyPartRepository(s.pool).List()
	if err != nil {
		return nil, err
	}
	for _, p := range parts {
		snap.DailyParts = append(snap.DailyParts, *p)
	}

	// Auditoria completa, sem paginação.
	logs, err := NewSystemLogRepository(s.pool).List(1_000_000, 0)
	if err != nil {
		return nil, err
	}
	for _, l := range logs {
		snap.Logs = append(snap.Logs, *l)
	}

	snap.Settings, err = NewSettingsRepository(s.pool).Get()
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Restore substitui o estado atual pelo snapshot, tudo-ou-nada.
func (s *SnapshotStore) Restore(ctx context.Context, snap *backup.Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`TRUNCATE materials, personnel, users, cautelas, system_logs, daily_parts, app_settings`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	materials := NewMaterialRepository(tx)
	for i := range snap.Materials {
		if err := materials.Create(&snap.Materials[i]); err != nil {
			return err
		}
	}
	personnel := NewPersonnelRepository(tx)
	for i := range snap.Personnel {
		if err := personnel.Create(&snap.Personnel[i]); err != nil {
			return err
		}
	}
	users := NewUserRepository(tx)
	for i := range snap.Users {
		if err := users.Create(&snap.Users[i]); err != nil {
			return err
		}
	}
	cautelas := NewCautelaRepository(tx)
	for i := range snap.Cautelas {
		if err := cautelas.Create(&snap.Cautelas[i]); err != nil {
			return err
		}
	}
	parts := NewDailyPartRepository(tx)
	for i := range snap.DailyParts {
		if err := parts.Create(&snap.DailyParts[i]); err != nil {
			return err
		}
	}
	logs := NewSystemLogRepository(tx)
	for i := range snap.Logs {
		if err := logs.Create(&snap.Logs[i]); err != nil {
			return err
		}
	}
	if snap.Settings != nil {
		if err := NewSettingsRepository(tx).Save(snap.Settings); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit restore: %w", err)
	}
	return nil
}
