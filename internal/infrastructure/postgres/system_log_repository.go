package postgres

import (
	"context"
	"fmt"

	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

var _ repository.SystemLogRepository = (*SystemLogRepo)(nil)

// SystemLogRepo implementação do porto SystemLogRepository sobre PostgreSQL.
type SystemLogRepo struct {
	q Querier
}

// NewSystemLogRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewSystemLogRepository(q Querier) *SystemLogRepo {
	return &SystemLogRepo{q: q}
}

// Create grava uma entrada de auditoria.
func (r *SystemLogRepo) Create(l *entity.SystemLog) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO system_logs (id, armorer_name, action, details, ts) VALUES ($1, $2, $3, $4, $5)`,
		l.ID, l.ArmorerName, l.Action, l.Details, l.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert system log: %w", err)
	}
	return nil
}

// List devolve uma página do registro, mais recente primeiro.
func (r *SystemLogRepo) List(limit, offset int) ([]*entity.SystemLog, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, armorer_name, action, details, ts FROM system_logs ORDER BY ts DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list system logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.SystemLog
	for rows.Next() {
		var l entity.SystemLog
		if err := rows.Scan(&l.ID, &l.ArmorerName, &l.Action, &l.Details, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan system log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
