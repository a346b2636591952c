package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementação do porto SettingsRepository sobre PostgreSQL.
// Linha única (id = 1) com o documento JSONB completo.
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get devolve as configurações, ou nil se nunca foram salvas.
func (r *SettingsRepo) Get() (*entity.AppSettings, error) {
	var data []byte
	err := r.q.QueryRow(context.Background(), `SELECT data FROM app_settings WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}
	var s entity.AppSettings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	return &s, nil
}

// Save grava as configurações (upsert da linha única).
func (r *SettingsRepo) Save(s *entity.AppSettings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	_, err = r.q.Exec(context.Background(), `
		INSERT INTO app_settings (id, data, updated_at) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
		data, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
