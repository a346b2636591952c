package ledger_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

var (
	t0 = time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	t1 = t0.Add(12 * time.Hour)
)

func pessoa() entity.Personnel {
	return entity.Personnel{
		ID:        "p1",
		Name:      "João da Silva",
		WarName:   "Silva",
		Rank:      "Sd",
		Numeral:   "2º",
		Matricula: "123456-0",
		Area:      "Setor Bravo",
		Active:    true,
	}
}

func armeiro() entity.User {
	return entity.User{ID: "a1", Name: "Carlos Souza", WarName: "Souza", Rank: "Cb", Matricula: "654321-9"}
}

func estadoBase() ledger.State {
	return ledger.State{
		Materials: []entity.Material{
			{ID: "i1", Category: entity.CategoriaArmamento, Type: "Pistola", Model: "PT-100", SerialNumber: "ABC123", Status: entity.StatusDisponivel, Quantity: 1},
			{ID: "i2", Category: entity.CategoriaMunicao, Type: "Munição", Model: ".40", SerialNumber: "LOTE-7", Status: entity.StatusDisponivel, Quantity: 100},
			{ID: "i3", Category: entity.CategoriaRadio, Type: "HT", Model: "APX-2000", SerialNumber: "HT-01", Status: entity.StatusDisponivel, Quantity: 1},
		},
	}
}

func saidaPadrao(st ledger.State) (ledger.State, *entity.Cautela, error) {
	return ledger.Issue(st, ledger.IssueInput{
		CautelaID: "c1",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Lines: []ledger.IssueLine{
			{MaterialID: "i1", Quantity: 1},
			{MaterialID: "i2", Quantity: 20},
		},
		Signature: "data:image/jpeg;base64,assinatura",
		Now:       t0,
	})
}

func materialPorID(t *testing.T, st ledger.State, id string) entity.Material {
	t.Helper()
	for _, m := range st.Materials {
		if m.ID == id {
			return m
		}
	}
	t.Fatalf("material %s não encontrado no snapshot", id)
	return entity.Material{}
}

// verificaInvariantes confere, para todo o snapshot, detentor ⇔ CAUTELADO e
// ReturnedAt ⇔ FECHADA.
func verificaInvariantes(t *testing.T, st ledger.State) {
	t.Helper()
	for _, m := range st.Materials {
		assert.Truef(t, m.InvariantOK(), "material %s viola detentor ⇔ CAUTELADO", m.ID)
	}
	for _, c := range st.Cautelas {
		assert.Truef(t, c.InvariantOK(), "cautela %s viola FECHADA ⇔ ReturnedAt", c.ID)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Issue
// ──────────────────────────────────────────────────────────────────────────────

// Cenário principal do fluxo de saída: arma passa a CAUTELADO com detentor;
// munição mantém status e estoque intactos, quantidade só na linha.
func TestIssue_ArmaEMunicao(t *testing.T) {
	st, c, err := saidaPadrao(estadoBase())
	require.NoError(t, err)
	require.NotNil(t, c)

	assert.Equal(t, entity.CautelaAberta, c.Status)
	require.Len(t, c.Items, 2)
	assert.Equal(t, "Sd 2º Silva", c.PersonnelName, "snapshot posto+numeral+nome de guerra")
	assert.Equal(t, "Cb Souza", c.ArmorerName)
	assert.Equal(t, t0, c.IssuedAt)
	assert.Nil(t, c.ReturnedAt)
	assert.Equal(t, "Setor Bravo", c.Area, "área padrão vem do cadastro do policial")

	arma := materialPorID(t, st, "i1")
	assert.Equal(t, entity.StatusCautelado, arma.Status)
	assert.Equal(t, "p1", arma.PersonnelID)

	municao := materialPorID(t, st, "i2")
	assert.Equal(t, entity.StatusDisponivel, municao.Status, "linha de munição não muda o item")
	assert.Empty(t, municao.PersonnelID)
	assert.Equal(t, 100, municao.Quantity, "estoque nunca é debitado pelo núcleo de cautelas")
	assert.Equal(t, 20, c.Items[1].Quantity, "quantidade emprestada fica na linha")

	verificaInvariantes(t, st)
}

// Snapshot de nome é imutável: alterar o cadastro depois não muda a cautela.
func TestIssue_SnapshotImutavel(t *testing.T) {
	st, c, err := saidaPadrao(estadoBase())
	require.NoError(t, err)

	nome := c.PersonnelName
	// A cautela guarda a composição do momento da saída, não uma referência.
	assert.Equal(t, "Sd 2º Silva", nome)
	assert.Equal(t, nome, st.Cautelas[0].PersonnelName)
}

func TestIssue_SemAssinaturaRejeita(t *testing.T) {
	base := estadoBase()
	st, c, err := ledger.Issue(base, ledger.IssueInput{
		CautelaID: "c1",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Lines:     []ledger.IssueLine{{MaterialID: "i1"}},
		Now:       t0,
	})
	require.ErrorIs(t, err, domain.ErrMissingSignature)
	assert.Nil(t, c)
	assert.Equal(t, base, st, "falha de validação não altera o snapshot")
}

func TestIssue_SemLinhasRejeita(t *testing.T) {
	base := estadoBase()
	st, _, err := ledger.Issue(base, ledger.IssueInput{
		CautelaID: "c1",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Signature: "sig",
		Now:       t0,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, base, st)
}

func TestIssue_PessoaInativaRejeita(t *testing.T) {
	p := pessoa()
	p.Active = false
	base := estadoBase()
	st, _, err := ledger.Issue(base, ledger.IssueInput{
		CautelaID: "c1",
		Person:    p,
		Armorer:   armeiro(),
		Lines:     []ledger.IssueLine{{MaterialID: "i1"}},
		Signature: "sig",
		Now:       t0,
	})
	require.ErrorIs(t, err, domain.ErrPessoaInativa)
	assert.Equal(t, base, st)
}

// Duas saídas da mesma arma sem devolução: a segunda reprova porque o item
// não está mais DISPONIVEL, e nada é alterado (tudo-ou-nada).
func TestIssue_ArmaJaCautelada(t *testing.T) {
	st, _, err := saidaPadrao(estadoBase())
	require.NoError(t, err)

	antes := st
	st2, c, err := ledger.Issue(st, ledger.IssueInput{
		CautelaID: "c2",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Lines:     []ledger.IssueLine{{MaterialID: "i1"}},
		Signature: "sig",
		Now:       t1,
	})
	require.ErrorIs(t, err, domain.ErrMaterialIndisponivel)
	assert.Nil(t, c)
	assert.Equal(t, antes, st2)
}

// Validação tardia não pode deixar escrita parcial: a primeira linha é
// válida, a segunda referencia material inexistente — nenhum item muda.
func TestIssue_FalhaParcialNaoCommita(t *testing.T) {
	base := estadoBase()
	st, _, err := ledger.Issue(base, ledger.IssueInput{
		CautelaID: "c1",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Lines: []ledger.IssueLine{
			{MaterialID: "i1"},
			{MaterialID: "nao-existe"},
		},
		Signature: "sig",
		Now:       t0,
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, base, st)
	assert.Equal(t, entity.StatusDisponivel, materialPorID(t, st, "i1").Status)
}

func TestIssue_MaterialRepetidoRejeita(t *testing.T) {
	base := estadoBase()
	_, _, err := ledger.Issue(base, ledger.IssueInput{
		CautelaID: "c1",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Lines: []ledger.IssueLine{
			{MaterialID: "i1"},
			{MaterialID: "i1"},
		},
		Signature: "sig",
		Now:       t0,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Quantidade só é editável em categorias consumíveis; para as demais a linha
// registra sempre 1.
func TestIssue_QuantidadeForcadaParaUnitarios(t *testing.T) {
	base := estadoBase()
	_, c, err := ledger.Issue(base, ledger.IssueInput{
		CautelaID: "c1",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Lines:     []ledger.IssueLine{{MaterialID: "i3", Quantity: 5}},
		Signature: "sig",
		Now:       t0,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Items[0].Quantity)
}

// Ordem de apresentação: saída mais recente primeiro.
func TestIssue_MaisRecentePrimeiro(t *testing.T) {
	st, _, err := saidaPadrao(estadoBase())
	require.NoError(t, err)

	st, _, err = ledger.Issue(st, ledger.IssueInput{
		CautelaID: "c2",
		Person:    pessoa(),
		Armorer:   armeiro(),
		Lines:     []ledger.IssueLine{{MaterialID: "i3"}},
		Signature: "sig",
		Now:       t1,
	})
	require.NoError(t, err)

	require.Len(t, st.Cautelas, 2)
	assert.Equal(t, "c2", st.Cautelas[0].ID)
	assert.Equal(t, "c1", st.Cautelas[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Close
// ──────────────────────────────────────────────────────────────────────────────

// Ciclo completo do cenário da especificação: saída de arma + munição (20) e
// devolução. A arma volta a DISPONIVEL sem detentor; a munição permanece
// intocada (status e estoque).
func TestClose_CicloCompleto(t *testing.T) {
	st, c, err := saidaPadrao(estadoBase())
	require.NoError(t, err)

	recebedor := entity.User{ID: "a2", Name: "Pedro Lima", Rank: "Sgt", WarName: "Lima"}
	st, fechada, err := ledger.Close(st, ledger.CloseInput{
		CautelaID: c.ID,
		Armorer:   recebedor,
		Notes:     "material conferido",
		Now:       t1,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CautelaFechada, fechada.Status)
	require.NotNil(t, fechada.ReturnedAt)
	assert.Equal(t, t1, *fechada.ReturnedAt)
	assert.Equal(t, "Sgt Lima", fechada.ArmorerInName)
	assert.Empty(t, fechada.SignatureIn, "assinatura na devolução é opcional")

	arma := materialPorID(t, st, "i1")
	assert.Equal(t, entity.StatusDisponivel, arma.Status)
	assert.Empty(t, arma.PersonnelID)

	municao := materialPorID(t, st, "i2")
	assert.Equal(t, entity.StatusDisponivel, municao.Status)
	assert.Equal(t, 100, municao.Quantity)

	verificaInvariantes(t, st)
}

// Transição terminal: fechar cautela já FECHADA devolve conflito sem efeito.
func TestClose_JaFechadaConflita(t *testing.T) {
	st, c, err := saidaPadrao(estadoBase())
	require.NoError(t, err)

	st, _, err = ledger.Close(st, ledger.CloseInput{CautelaID: c.ID, Armorer: armeiro(), Now: t1})
	require.NoError(t, err)

	antes := st
	st2, fechada, err := ledger.Close(st, ledger.CloseInput{CautelaID: c.ID, Armorer: armeiro(), Now: t1.Add(time.Hour)})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, fechada)
	assert.Equal(t, antes, st2)
}

func TestClose_CautelaInexistente(t *testing.T) {
	base := estadoBase()
	st, _, err := ledger.Close(base, ledger.CloseInput{CautelaID: "nao-existe", Armorer: armeiro(), Now: t1})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, base, st)
}

// Item excluído do acervo entre saída e devolução não impede o fechamento.
func TestClose_ItemExcluidoDoAcervo(t *testing.T) {
	st, c, err := saidaPadrao(estadoBase())
	require.NoError(t, err)

	// Remove a arma do snapshot de materiais.
	var sobrando []entity.Material
	for _, m := range st.Materials {
		if m.ID != "i1" {
			sobrando = append(sobrando, m)
		}
	}
	st.Materials = sobrando

	st, fechada, err := ledger.Close(st, ledger.CloseInput{CautelaID: c.ID, Armorer: armeiro(), Now: t1})
	require.NoError(t, err)
	assert.Equal(t, entity.CautelaFechada, fechada.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// OpenForMaterial
// ──────────────────────────────────────────────────────────────────────────────

func TestOpenForMaterial(t *testing.T) {
	st, c, err := saidaPadrao(estadoBase())
	require.NoError(t, err)

	aberta := ledger.OpenForMaterial(st, "i1")
	require.NotNil(t, aberta)
	assert.Equal(t, c.ID, aberta.ID)

	assert.Nil(t, ledger.OpenForMaterial(st, "i3"), "material sem cautela aberta")

	st, _, err = ledger.Close(st, ledger.CloseInput{CautelaID: c.ID, Armorer: armeiro(), Now: t1})
	require.NoError(t, err)
	assert.Nil(t, ledger.OpenForMaterial(st, "i1"), "cautela fechada não conta")
}
