package armory_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinela-pm/sentinela-api/internal/application/armory"
	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type memMaterials struct {
	byID map[string]entity.Material
}

func (m *memMaterials) Create(mat *entity.Material) error { m.byID[mat.ID] = *mat; return nil }
func (m *memMaterials) GetByID(id string) (*entity.Material, error) {
	if v, ok := m.byID[id]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}
func (m *memMaterials) GetForUpdate(id string) (*entity.Material, error) { return m.GetByID(id) }
func (m *memMaterials) GetBySerialNumber(serial string) (*entity.Material, error) {
	for _, v := range m.byID {
		if v.SerialNumber == serial {
			cp := v
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memMaterials) List() ([]*entity.Material, error) {
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*entity.Material, 0, len(ids))
	for _, id := range ids {
		cp := m.byID[id]
		out = append(out, &cp)
	}
	return out, nil
}
func (m *memMaterials) ListByCategory(category string) ([]*entity.Material, error) {
	all, _ := m.List()
	out := all[:0]
	for _, v := range all {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out, nil
}
func (m *memMaterials) Update(mat *entity.Material) error {
	if _, ok := m.byID[mat.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[mat.ID] = *mat
	return nil
}
func (m *memMaterials) Delete(id string) error { delete(m.byID, id); return nil }
func (m *memMaterials) CountByStatus() (map[string]int, error) {
	out := map[string]int{}
	for _, v := range m.byID {
		out[v.Status]++
	}
	return out, nil
}

type memCautelas struct {
	byID map[string]entity.Cautela
}

func (m *memCautelas) Create(c *entity.Cautela) error { m.byID[c.ID] = *c; return nil }
func (m *memCautelas) GetByID(id string) (*entity.Cautela, error) {
	if v, ok := m.byID[id]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}
func (m *memCautelas) GetForUpdate(id string) (*entity.Cautela, error) { return m.GetByID(id) }
func (m *memCautelas) List() ([]*entity.Cautela, error) {
	out := make([]*entity.Cautela, 0, len(m.byID))
	for _, v := range m.byID {
		cp := v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })
	return out, nil
}
func (m *memCautelas) ListOpen() ([]*entity.Cautela, error) {
	all, _ := m.List()
	out := all[:0]
	for _, v := range all {
		if v.Open() {
			out = append(out, v)
		}
	}
	return out, nil
}
func (m *memCautelas) Search(filter repository.CautelaFilter) ([]*entity.Cautela, error) {
	all, _ := m.List()
	out := make([]*entity.Cautela, 0, len(all))
	for _, v := range all {
		if filter.PersonnelID != "" && v.PersonnelID != filter.PersonnelID {
			continue
		}
		if filter.Status != "" && v.Status != filter.Status {
			continue
		}
		if filter.MaterialID != "" && !v.HasMaterial(filter.MaterialID) {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
func (m *memCautelas) Update(c *entity.Cautela) error {
	if _, ok := m.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[c.ID] = *c
	return nil
}
func (m *memCautelas) CountOpen() (int, error) {
	n := 0
	for _, v := range m.byID {
		if v.Open() {
			n++
		}
	}
	return n, nil
}

type memPersonnel struct {
	byID map[string]entity.Personnel
}

func (m *memPersonnel) Create(p *entity.Personnel) error { m.byID[p.ID] = *p; return nil }
func (m *memPersonnel) GetByID(id string) (*entity.Personnel, error) {
	if v, ok := m.byID[id]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}
func (m *memPersonnel) GetByMatricula(mat string) (*entity.Personnel, error) {
	for _, v := range m.byID {
		if v.Matricula == mat {
			cp := v
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memPersonnel) List() ([]*entity.Personnel, error) { return nil, nil }
func (m *memPersonnel) Update(p *entity.Personnel) error   { m.byID[p.ID] = *p; return nil }
func (m *memPersonnel) Delete(id string) error             { delete(m.byID, id); return nil }

type memUsers struct {
	byID map[string]entity.User
}

func (m *memUsers) Create(u *entity.User) error { m.byID[u.ID] = *u; return nil }
func (m *memUsers) GetByID(id string) (*entity.User, error) {
	if v, ok := m.byID[id]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}
func (m *memUsers) GetByMatricula(mat string) (*entity.User, error) {
	for _, v := range m.byID {
		if v.Matricula == mat {
			cp := v
			return &cp, nil
		}
	}
	return nil, nil
}
func (m *memUsers) List() ([]*entity.User, error) { return nil, nil }
func (m *memUsers) Update(u *entity.User) error   { m.byID[u.ID] = *u; return nil }
func (m *memUsers) Delete(id string) error        { delete(m.byID, id); return nil }
func (m *memUsers) Count() (int, error)           { return len(m.byID), nil }

type memLogs struct {
	entries []entity.SystemLog
}

func (m *memLogs) Create(l *entity.SystemLog) error { m.entries = append(m.entries, *l); return nil }
func (m *memLogs) List(limit, offset int) ([]*entity.SystemLog, error) {
	out := make([]*entity.SystemLog, 0, len(m.entries))
	for i := range m.entries {
		out = append(out, &m.entries[i])
	}
	return out, nil
}

// memTx simula a transação: tira um snapshot antes do callback e o restaura em
// caso de erro, imitando o Rollback do banco.
type memTx struct {
	materials *memMaterials
	cautelas  *memCautelas
}

func (tx *memTx) Run(_ context.Context, fn func(repository.MaterialRepository, repository.CautelaRepository) error) error {
	matSnap := make(map[string]entity.Material, len(tx.materials.byID))
	for k, v := range tx.materials.byID {
		matSnap[k] = v
	}
	cauSnap := make(map[string]entity.Cautela, len(tx.cautelas.byID))
	for k, v := range tx.cautelas.byID {
		cauSnap[k] = v
	}
	if err := fn(tx.materials, tx.cautelas); err != nil {
		tx.materials.byID = matSnap
		tx.cautelas.byID = cauSnap
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *armory.CautelaUseCase
	materials *memMaterials
	cautelas  *memCautelas
	logs      *memLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	materials := &memMaterials{byID: map[string]entity.Material{
		"m1": {ID: "m1", Category: entity.CategoriaArmamento, Type: "Pistola", Model: "TS9", SerialNumber: "TS9-0001", Status: entity.StatusDisponivel, Quantity: 1},
		"m2": {ID: "m2", Category: entity.CategoriaMunicao, Type: "Munição", Model: "9mm", SerialNumber: "LOTE-01", Status: entity.StatusDisponivel, Quantity: 200},
		"m3": {ID: "m3", Category: entity.CategoriaRadio, Type: "HT", Model: "APX", SerialNumber: "HT-0001", Status: entity.StatusManutencao, Quantity: 1, Location: "Oficina"},
	}}
	cautelas := &memCautelas{byID: map[string]entity.Cautela{}}
	personnel := &memPersonnel{byID: map[string]entity.Personnel{
		"p1": {ID: "p1", Name: "João Pedro de Souza", WarName: "Souza", Rank: "Sd", Matricula: "200101", Active: true},
		"p2": {ID: "p2", Name: "Roberto Lima", WarName: "Lima", Rank: "Sgt", Matricula: "200104", Active: false},
	}}
	users := &memUsers{byID: map[string]entity.User{
		"a1": {ID: "a1", Name: "Carlos Silva", WarName: "Silva", Rank: "Sgt", Matricula: "100001", Role: entity.RoleSuperAdmin},
	}}
	logs := &memLogs{}

	tx := &memTx{materials: materials, cautelas: cautelas}
	uc := armory.NewCautelaUseCase(tx, cautelas, personnel, users, logs)
	return &fixture{uc: uc, materials: materials, cautelas: cautelas, logs: logs}
}

func issueRequest() dto.IssueCautelaRequest {
	return dto.IssueCautelaRequest{
		PersonnelID: "p1",
		Items: []dto.CautelaItemRequest{
			{MaterialID: "m1"},
			{MaterialID: "m2", Quantity: 50},
		},
		Area:      "Rádio Patrulha",
		Signature: "data:image/png;base64,assinatura",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue
// ──────────────────────────────────────────────────────────────────────────────

func TestIssue_CriaCautelaEAtualizaMaterial(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Issue(context.Background(), "a1", issueRequest())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, entity.CautelaAberta, out.Status)
	assert.Equal(t, "Sd Souza", out.PersonnelName, "snapshot do nome composto do policial")
	assert.Equal(t, "Sgt Silva", out.ArmorerName)
	assert.Len(t, out.Items, 2)

	// A pistola muda para CAUTELADO com o detentor; a munição (consumível) não.
	m1, _ := f.materials.GetByID("m1")
	assert.Equal(t, entity.StatusCautelado, m1.Status)
	assert.Equal(t, "p1", m1.PersonnelID)
	m2, _ := f.materials.GetByID("m2")
	assert.Equal(t, entity.StatusDisponivel, m2.Status)
	assert.Equal(t, 200, m2.Quantity, "cautela não altera o estoque de consumível")

	// Auditoria pós-commit
	require.Len(t, f.logs.entries, 1)
	assert.Equal(t, "SAIDA_MATERIAL", f.logs.entries[0].Action)
	assert.Equal(t, "Sgt Silva", f.logs.entries[0].ArmorerName)
}

func TestIssue_MaterialIndisponivel_NaoPersisteNada(t *testing.T) {
	f := newFixture(t)
	in := issueRequest()
	in.Items = append(in.Items, dto.CautelaItemRequest{MaterialID: "m3"}) // em manutenção

	_, err := f.uc.Issue(context.Background(), "a1", in)
	require.ErrorIs(t, err, domain.ErrMaterialIndisponivel)

	// Rollback: nenhum material mudou e nenhuma cautela foi criada.
	m1, _ := f.materials.GetByID("m1")
	assert.Equal(t, entity.StatusDisponivel, m1.Status)
	n, _ := f.cautelas.CountOpen()
	assert.Zero(t, n)
	assert.Empty(t, f.logs.entries, "falha não gera auditoria")
}

func TestIssue_SemAssinatura_Rejeita(t *testing.T) {
	f := newFixture(t)
	in := issueRequest()
	in.Signature = ""

	_, err := f.uc.Issue(context.Background(), "a1", in)
	assert.ErrorIs(t, err, domain.ErrMissingSignature)
}

func TestIssue_PolicialInativo_Rejeita(t *testing.T) {
	f := newFixture(t)
	in := issueRequest()
	in.PersonnelID = "p2"

	_, err := f.uc.Issue(context.Background(), "a1", in)
	assert.ErrorIs(t, err, domain.ErrPessoaInativa)
}

func TestIssue_PolicialInexistente_NotFound(t *testing.T) {
	f := newFixture(t)
	in := issueRequest()
	in.PersonnelID = "nao-existe"

	_, err := f.uc.Issue(context.Background(), "a1", in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIssue_SemItens_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	in := issueRequest()
	in.Items = nil

	_, err := f.uc.Issue(context.Background(), "a1", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────────────────────

func TestClose_DevolveMaterialEFechaCautela(t *testing.T) {
	f := newFixture(t)
	issued, err := f.uc.Issue(context.Background(), "a1", issueRequest())
	require.NoError(t, err)

	out, err := f.uc.Close(context.Background(), "a1", issued.ID, dto.CloseCautelaRequest{
		Signature: "data:image/png;base64,devolucao",
		Notes:     "sem alterações",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CautelaFechada, out.Status)
	require.NotNil(t, out.ReturnedAt)
	assert.Equal(t, "Sgt Silva", out.ArmorerInName)
	assert.Equal(t, "sem alterações", out.NotesIn)

	m1, _ := f.materials.GetByID("m1")
	assert.Equal(t, entity.StatusDisponivel, m1.Status)
	assert.Empty(t, m1.PersonnelID)

	n, _ := f.cautelas.CountOpen()
	assert.Zero(t, n)
}

func TestClose_SemAssinatura_EhAceita(t *testing.T) {
	f := newFixture(t)
	issued, err := f.uc.Issue(context.Background(), "a1", issueRequest())
	require.NoError(t, err)

	out, err := f.uc.Close(context.Background(), "a1", issued.ID, dto.CloseCautelaRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.CautelaFechada, out.Status)
	assert.Empty(t, out.SignatureIn)
}

func TestClose_JaFechada_Conflita(t *testing.T) {
	f := newFixture(t)
	issued, err := f.uc.Issue(context.Background(), "a1", issueRequest())
	require.NoError(t, err)

	_, err = f.uc.Close(context.Background(), "a1", issued.ID, dto.CloseCautelaRequest{})
	require.NoError(t, err)

	_, err = f.uc.Close(context.Background(), "a1", issued.ID, dto.CloseCautelaRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClose_CautelaInexistente_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Close(context.Background(), "a1", "nao-existe", dto.CloseCautelaRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_DataInvalida_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Search(dto.CautelaSearchRequest{From: "31/12/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_FiltraPorMaterial(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Issue(context.Background(), "a1", issueRequest())
	require.NoError(t, err)

	out, err := f.uc.Search(dto.CautelaSearchRequest{MaterialID: "m1"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)

	out, err = f.uc.Search(dto.CautelaSearchRequest{MaterialID: "m3"})
	require.NoError(t, err)
	assert.Zero(t, out.Total)
}
