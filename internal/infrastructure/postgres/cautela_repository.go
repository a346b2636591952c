package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/jackc/pgx/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

var _ repository.CautelaRepository = (*CautelaRepo)(nil)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var pgDialect = goqu.Dialect("postgres")

const cautelaColumns = `id, personnel_id, personnel_name, armorer_id, armorer_name, items, issued_at,
		returned_at, armorer_in_id, armorer_in_name, status, area, notes_out, notes_in, signature_out, signature_in`

// CautelaRepo implementação do porto CautelaRepository sobre PostgreSQL.
// As linhas de material ficam em JSONB: são snapshot do momento da saída e
// nunca são consultadas isoladamente, só pela cautela inteira.
type CautelaRepo struct {
	q Querier
}

// NewCautelaRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewCautelaRepository(q Querier) *CautelaRepo {
	return &CautelaRepo{q: q}
}

// Create persiste uma nova cautela.
func (r *CautelaRepo) Create(c *entity.Cautela) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		INSERT INTO cautelas (id, personnel_id, personnel_name, armorer_id, armorer_name, items, issued_at,
			returned_at, armorer_in_id, armorer_in_name, status, area, notes_out, notes_in, signature_out, signature_in)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err = r.q.Exec(context.Background(), query,
		c.ID, c.PersonnelID, c.PersonnelName, c.ArmorerID, c.ArmorerName, items, c.IssuedAt,
		c.ReturnedAt, c.ArmorerInID, c.ArmorerInName, c.Status, c.Area, c.NotesOut, c.NotesIn,
		c.SignatureOut, c.SignatureIn,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cautela: %w", err)
	}
	return nil
}

// GetByID busca uma cautela por id.
func (r *CautelaRepo) GetByID(id string) (*entity.Cautela, error) {
	return r.get(`SELECT `+cautelaColumns+` FROM cautelas WHERE id = $1`, id)
}

// GetForUpdate busca bloqueando a linha (SELECT FOR UPDATE); usar em transação.
func (r *CautelaRepo) GetForUpdate(id string) (*entity.Cautela, error) {
	return r.get(`SELECT `+cautelaColumns+` FROM cautelas WHERE id = $1 FOR UPDATE`, id)
}

func (r *CautelaRepo) get(query string, args ...any) (*entity.Cautela, error) {
	c, err := scanCautela(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cautela: %w", err)
	}
	return c, nil
}

func scanCautela(row pgx.Row) (*entity.Cautela, error) {
	var c entity.Cautela
	var items []byte
	err := row.Scan(
		&c.ID, &c.PersonnelID, &c.PersonnelName, &c.ArmorerID, &c.ArmorerName, &items, &c.IssuedAt,
		&c.ReturnedAt, &c.ArmorerInID, &c.ArmorerInName, &c.Status, &c.Area, &c.NotesOut, &c.NotesIn,
		&c.SignatureOut, &c.SignatureIn,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &c.Items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return &c, nil
}

// List devolve o histórico completo, saída mais recente primeiro.
func (r *CautelaRepo) List() ([]*entity.Cautela, error) {
	return r.list(`SELECT ` + cautelaColumns + ` FROM cautelas ORDER BY issued_at DESC`)
}

// ListOpen devolve as cautelas ABERTAS, mais recente primeiro.
func (r *CautelaRepo) ListOpen() ([]*entity.Cautela, error) {
	return r.list(`SELECT `+cautelaColumns+` FROM cautelas WHERE status = $1 ORDER BY issued_at DESC`, entity.CautelaAberta)
}

func (r *CautelaRepo) list(query string, args ...any) ([]*entity.Cautela, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cautelas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cautela
	for rows.Next() {
		c, err := scanCautela(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cautela: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Search monta a consulta dinamicamente com goqu a partir dos filtros
// preenchidos. Filtro por material usa containment JSONB (@>) sobre as linhas.
func (r *CautelaRepo) Search(filter repository.CautelaFilter) ([]*entity.Cautela, error) {
	ds := pgDialect.From("cautelas").
		Select(goqu.L(cautelaColumns)).
		Order(goqu.I("issued_at").Desc())

	if filter.PersonnelID != "" {
		ds = ds.Where(goqu.C("personnel_id").Eq(filter.PersonnelID))
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(filter.Status))
	}
	if filter.Area != "" {
		ds = ds.Where(goqu.C("area").Eq(filter.Area))
	}
	if filter.From != nil {
		ds = ds.Where(goqu.C("issued_at").Gte(*filter.From))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.C("issued_at").Lte(*filter.To))
	}
	if filter.MaterialID != "" {
		probe, err := json.Marshal([]map[string]string{{"material_id": filter.MaterialID}})
		if err != nil {
			return nil, fmt.Errorf("marshal material probe: %w", err)
		}
		ds = ds.Where(goqu.L("items @> ?", string(probe)))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}
	return r.list(query, args...)
}

// Update atualiza uma cautela (devolução).
func (r *CautelaRepo) Update(c *entity.Cautela) error {
	items, err := json.Marshal(c.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	query := `
		UPDATE cautelas SET personnel_id = $2, personnel_name = $3, armorer_id = $4, armorer_name = $5,
			items = $6, issued_at = $7, returned_at = $8, armorer_in_id = $9, armorer_in_name = $10,
			status = $11, area = $12, notes_out = $13, notes_in = $14, signature_out = $15, signature_in = $16
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		c.ID, c.PersonnelID, c.PersonnelName, c.ArmorerID, c.ArmorerName,
		items, c.IssuedAt, c.ReturnedAt, c.ArmorerInID, c.ArmorerInName,
		c.Status, c.Area, c.NotesOut, c.NotesIn, c.SignatureOut, c.SignatureIn,
	)
	if err != nil {
		return fmt.Errorf("update cautela: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountOpen conta as cautelas ABERTAS.
func (r *CautelaRepo) CountOpen() (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM cautelas WHERE status = $1`, entity.CautelaAberta).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count open cautelas: %w", err)
	}
	return n, nil
}
