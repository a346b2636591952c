package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

var _ repository.DailyPartRepository = (*DailyPartRepo)(nil)

const dailyPartColumns = `id, author_id, author_name, status, signature, content, created_at, updated_at`

// DailyPartRepo implementação do porto DailyPartRepository sobre PostgreSQL.
// O conteúdo das cinco partes fica em JSONB.
type DailyPartRepo struct {
	q Querier
}

// NewDailyPartRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewDailyPartRepository(q Querier) *DailyPartRepo {
	return &DailyPartRepo{q: q}
}

// Create persiste uma nova edição do livro.
func (r *DailyPartRepo) Create(p *entity.DailyPart) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	query := `
		INSERT INTO daily_parts (id, author_id, author_name, status, signature, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		p.ID, p.AuthorID, p.AuthorName, p.Status, p.Signature, content, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert daily part: %w", err)
	}
	return nil
}

// GetByID busca uma edição por id.
func (r *DailyPartRepo) GetByID(id string) (*entity.DailyPart, error) {
	p, err := scanDailyPart(r.q.QueryRow(context.Background(),
		`SELECT `+dailyPartColumns+` FROM daily_parts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily part: %w", err)
	}
	return p, nil
}

func scanDailyPart(row pgx.Row) (*entity.DailyPart, error) {
	var p entity.DailyPart
	var content []byte
	err := row.Scan(&p.ID, &p.AuthorID, &p.AuthorName, &p.Status, &p.Signature, &content, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(content, &p.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	return &p, nil
}

// List devolve as edições, mais recente primeiro.
func (r *DailyPartRepo) List() ([]*entity.DailyPart, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+dailyPartColumns+` FROM daily_parts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list daily parts: %w", err)
	}
	defer rows.Close()

	var out []*entity.DailyPart
	for rows.Next() {
		p, err := scanDailyPart(rows)
		if err != nil {
			return nil, fmt.Errorf("scan daily part: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update atualiza uma edição existente.
func (r *DailyPartRepo) Update(p *entity.DailyPart) error {
	content, err := json.Marshal(p.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}
	query := `
		UPDATE daily_parts SET author_id = $2, author_name = $3, status = $4, signature = $5,
			content = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.AuthorID, p.AuthorName, p.Status, p.Signature, content, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update daily part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove uma edição.
func (r *DailyPartRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM daily_parts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete daily part: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
