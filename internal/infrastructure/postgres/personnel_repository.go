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

var _ repository.PersonnelRepository = (*PersonnelRepo)(nil)

const personnelColumns = `id, name, war_name, rank, numeral, matricula, area, active, created_at, updated_at`

// PersonnelRepo implementação do porto PersonnelRepository sobre PostgreSQL.
type PersonnelRepo struct {
	q Querier
}

// NewPersonnelRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewPersonnelRepository(q Querier) *PersonnelRepo {
	return &PersonnelRepo{q: q}
}

// Create persiste um novo policial.
func (r *PersonnelRepo) Create(p *entity.Personnel) error {
	query := `
		INSERT INTO personnel (id, name, war_name, rank, numeral, matricula, area, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.WarName, p.Rank, p.Numeral, p.Matricula, p.Area, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMatriculaExists
		}
		return fmt.Errorf("insert personnel: %w", err)
	}
	return nil
}

// GetByID busca um policial por id.
func (r *PersonnelRepo) GetByID(id string) (*entity.Personnel, error) {
	return r.get(`SELECT `+personnelColumns+` FROM personnel WHERE id = $1`, id)
}

// GetByMatricula busca por matrícula.
func (r *PersonnelRepo) GetByMatricula(matricula string) (*entity.Personnel, error) {
	return r.get(`SELECT `+personnelColumns+` FROM personnel WHERE matricula = $1`, matricula)
}

func (r *PersonnelRepo) get(query string, args ...any) (*entity.Personnel, error) {
	var p entity.Personnel
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.Name, &p.WarName, &p.Rank, &p.Numeral, &p.Matricula, &p.Area, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get personnel: %w", err)
	}
	return &p, nil
}

// List devolve o efetivo em ordem alfabética.
func (r *PersonnelRepo) List() ([]*entity.Personnel, error) {
	rows, err := r.q.Query(context.Background(), `SELECT `+personnelColumns+` FROM personnel ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list personnel: %w", err)
	}
	defer rows.Close()

	var out []*entity.Personnel
	for rows.Next() {
		var p entity.Personnel
		if err := rows.Scan(
			&p.ID, &p.Name, &p.WarName, &p.Rank, &p.Numeral, &p.Matricula, &p.Area, &p.Active, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan personnel: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Update atualiza um policial existente.
func (r *PersonnelRepo) Update(p *entity.Personnel) error {
	query := `
		UPDATE personnel SET name = $2, war_name = $3, rank = $4, numeral = $5, matricula = $6,
			area = $7, active = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		p.ID, p.Name, p.WarName, p.Rank, p.Numeral, p.Matricula, p.Area, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMatriculaExists
		}
		return fmt.Errorf("update personnel: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um policial.
func (r *PersonnelRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM personnel WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete personnel: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
