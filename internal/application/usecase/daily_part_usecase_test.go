package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// Fakes em memória

type memParts struct {
	byID map[string]entity.DailyPart
}

func (m *memParts) Create(p *entity.DailyPart) error { m.byID[p.ID] = *p; return nil }
func (m *memParts) GetByID(id string) (*entity.DailyPart, error) {
	if v, ok := m.byID[id]; ok {
		cp := v
		return &cp, nil
	}
	return nil, nil
}
func (m *memParts) List() ([]*entity.DailyPart, error) {
	out := make([]*entity.DailyPart, 0, len(m.byID))
	for _, v := range m.byID {
		cp := v
		out = append(out, &cp)
	}
	return out, nil
}
func (m *memParts) Update(p *entity.DailyPart) error { m.byID[p.ID] = *p; return nil }
func (m *memParts) Delete(id string) error           { delete(m.byID, id); return nil }

type memSettings struct {
	settings *entity.AppSettings
}

func (m *memSettings) Get() (*entity.AppSettings, error)   { return m.settings, nil }
func (m *memSettings) Save(s *entity.AppSettings) error    { m.settings = s; return nil }

type memAudit struct {
	entries []entity.SystemLog
}

func (m *memAudit) Create(l *entity.SystemLog) error { m.entries = append(m.entries, *l); return nil }
func (m *memAudit) List(limit, offset int) ([]*entity.SystemLog, error) {
	return nil, nil
}

// fakeExporter captura a instituição recebida e devolve um marcador.
type fakeExporter struct {
	marker      string
	institution string
}

func (f *fakeExporter) Render(part *entity.DailyPart, institution string) ([]byte, error) {
	f.institution = institution
	return []byte(f.marker + part.ID), nil
}

func newPartFixture() (*usecase.DailyPartUseCase, *memParts, *fakeExporter, *fakeExporter) {
	parts := &memParts{byID: map[string]entity.DailyPart{}}
	settings := &memSettings{settings: &entity.AppSettings{InstitutionName: "Polícia Militar do Paraná"}}
	pdf := &fakeExporter{marker: "pdf:"}
	docx := &fakeExporter{marker: "docx:"}
	uc := usecase.NewDailyPartUseCase(parts, settings, &memAudit{}, pdf, docx)
	return uc, parts, pdf, docx
}

func conteudoExemplo() dto.SaveDailyPartRequest {
	return dto.SaveDailyPartRequest{Content: entity.DailyPartContent{
		Part2: "Sem alterações.",
		Part4: "Sem ocorrências.",
	}}
}

func TestDailyPart_CicloRascunhoFinalizada(t *testing.T) {
	uc, _, _, _ := newPartFixture()

	created, err := uc.Create("100001", "Sgt Silva", conteudoExemplo())
	require.NoError(t, err)
	assert.Equal(t, entity.PartRascunho, created.Status)
	assert.Equal(t, "Sgt Silva", created.AuthorName)

	// Rascunho aceita atualização.
	in := conteudoExemplo()
	in.Content.Part4 = "Uma ocorrência registrada."
	updated, err := uc.Update("Sgt Silva", created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Uma ocorrência registrada.", updated.Content.Part4)

	// Finalizar sem assinatura é rejeitado.
	_, err = uc.Finalize("Sgt Silva", created.ID, dto.FinalizeDailyPartRequest{})
	assert.ErrorIs(t, err, domain.ErrMissingSignature)

	done, err := uc.Finalize("Sgt Silva", created.ID, dto.FinalizeDailyPartRequest{Signature: "data:image/png;base64,x"})
	require.NoError(t, err)
	assert.Equal(t, entity.PartFinalizada, done.Status)

	// Finalizada é imutável: update, finalize de novo e delete conflitam.
	_, err = uc.Update("Sgt Silva", created.ID, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = uc.Finalize("Sgt Silva", created.ID, dto.FinalizeDailyPartRequest{Signature: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
	err = uc.Delete("Sgt Silva", created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDailyPart_DeleteRascunho(t *testing.T) {
	uc, parts, _, _ := newPartFixture()
	created, err := uc.Create("100001", "Sgt Silva", conteudoExemplo())
	require.NoError(t, err)

	require.NoError(t, uc.Delete("Sgt Silva", created.ID))
	assert.Empty(t, parts.byID)

	err = uc.Delete("Sgt Silva", "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDailyPart_ExportUsaInstituicaoDasConfiguracoes(t *testing.T) {
	uc, _, pdf, docx := newPartFixture()
	created, err := uc.Create("100001", "Sgt Silva", conteudoExemplo())
	require.NoError(t, err)

	data, err := uc.ExportPDF(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "pdf:"+created.ID, string(data))
	assert.Equal(t, "Polícia Militar do Paraná", pdf.institution)

	data, err = uc.ExportDocx(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "docx:"+created.ID, string(data))
	assert.Equal(t, "Polícia Militar do Paraná", docx.institution)

	_, err = uc.ExportPDF("nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
