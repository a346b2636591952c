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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialColumns = `id, category, type, model, serial_number, manufacturer, caliber, condition,
		status, personnel_id, location, quantity, expiry_date, created_at, updated_at`

// MaterialRepo implementação do porto MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste um novo material.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (id, category, type, model, serial_number, manufacturer, caliber, condition,
			status, personnel_id, location, quantity, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Category, m.Type, m.Model, m.SerialNumber, m.Manufacturer, m.Caliber, m.Condition,
		m.Status, m.PersonnelID, m.Location, m.Quantity, m.ExpiryDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID busca um material por id.
func (r *MaterialRepo) GetByID(id string) (*entity.Material, error) {
	return r.get(`SELECT `+materialColumns+` FROM materials WHERE id = $1`, id)
}

// GetForUpdate busca bloqueando a linha (SELECT FOR UPDATE); usar em transação.
func (r *MaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.get(`SELECT `+materialColumns+` FROM materials WHERE id = $1 FOR UPDATE`, id)
}

// GetBySerialNumber busca por número de série.
func (r *MaterialRepo) GetBySerialNumber(serial string) (*entity.Material, error) {
	return r.get(`SELECT `+materialColumns+` FROM materials WHERE serial_number = $1 AND serial_number <> ''`, serial)
}

func (r *MaterialRepo) get(query string, args ...any) (*entity.Material, error) {
	var m entity.Material
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&m.ID, &m.Category, &m.Type, &m.Model, &m.SerialNumber, &m.Manufacturer, &m.Caliber, &m.Condition,
		&m.Status, &m.PersonnelID, &m.Location, &m.Quantity, &m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// List devolve o acervo completo, por categoria e tipo.
func (r *MaterialRepo) List() ([]*entity.Material, error) {
	return r.list(`SELECT ` + materialColumns + ` FROM materials ORDER BY category, type, model, serial_number`)
}

// ListByCategory devolve os materiais de uma categoria.
func (r *MaterialRepo) ListByCategory(category string) ([]*entity.Material, error) {
	return r.list(`SELECT `+materialColumns+` FROM materials WHERE category = $1 ORDER BY type, model, serial_number`, category)
}

func (r *MaterialRepo) list(query string, args ...any) ([]*entity.Material, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var out []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(
			&m.ID, &m.Category, &m.Type, &m.Model, &m.SerialNumber, &m.Manufacturer, &m.Caliber, &m.Condition,
			&m.Status, &m.PersonnelID, &m.Location, &m.Quantity, &m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Update atualiza um material existente.
func (r *MaterialRepo) Update(m *entity.Material) error {
	query := `
		UPDATE materials SET category = $2, type = $3, model = $4, serial_number = $5, manufacturer = $6,
			caliber = $7, condition = $8, status = $9, personnel_id = $10, location = $11, quantity = $12,
			expiry_date = $13, updated_at = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		m.ID, m.Category, m.Type, m.Model, m.SerialNumber, m.Manufacturer,
		m.Caliber, m.Condition, m.Status, m.PersonnelID, m.Location, m.Quantity,
		m.ExpiryDate, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove um material.
func (r *MaterialRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountByStatus devolve o total de itens por status.
func (r *MaterialRepo) CountByStatus() (map[string]int, error) {
	rows, err := r.q.Query(context.Background(), `SELECT status, count(*) FROM materials GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count materials: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out[status] = n
	}
	return out, rows.Err()
}
