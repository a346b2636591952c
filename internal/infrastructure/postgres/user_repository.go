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

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, name, war_name, rank, numeral, matricula, password_hash, role, created_at, updated_at`

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste um novo armeiro.
func (r *UserRepo) Create(u *entity.User) error {
	query := `
		INSERT INTO users (id, name, war_name, rank, numeral, matricula, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		u.ID, u.Name, u.WarName, u.Rank, u.Numeral, u.Matricula, u.PasswordHash, u.Role, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMatriculaExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID busca um armeiro por id.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.get(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByMatricula busca por matrícula.
func (r *UserRepo) GetByMatricula(matricula string) (*entity.User, error) {
	return r.get(`SELECT `+userColumns+` FROM users WHERE matricula = $1`, matricula)
}

func (r *UserRepo) get(query string, args ...any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&u.ID, &u.Name, &u.WarName, &u.Rank, &u.Numeral, &u.Matricula, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List devolve os armeiros em ordem alfabética.
func (r *UserRepo) List() ([]*entity.User, error) {
	rows, err := r.q.Query(context.Background(), `SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.WarName, &u.Rank, &u.Numeral, &u.Matricula, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Update atualiza um armeiro existente.
func (r *UserRepo) Update(u *entity.User) error {
	query := `
		UPDATE users SET name = $2, war_name = $3, rank = $4, numeral = $5, matricula = $6,
			password_hash = $7, role = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		u.ID, u.Name, u.WarName, u.Rank, u.Numeral, u.Matricula, u.PasswordHash, u.Role, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrMatriculaExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um armeiro.
func (r *UserRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count conta os armeiros cadastrados (zero dispara o fluxo de instalação).
func (r *UserRepo) Count() (int, error) {
	var n int
	if err := r.q.QueryRow(context.Background(), `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
