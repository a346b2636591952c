package docx

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

func parteExemplo() *entity.DailyPart {
	return &entity.DailyPart{
		ID:         "dp1",
		AuthorID:   "100001",
		AuthorName: "Sgt Silva",
		Status:     entity.PartFinalizada,
		Content: entity.DailyPartContent{
			Header: entity.PartHeader{
				Fiscal: "Cap Moreira", DateVisto: "2026-08-27",
				CRPM: "1º", BPM: "5º", City: "Curitiba",
			},
			Intro: entity.PartIntro{BPM: "5º", DateStart: "2026-08-27", DateEnd: "2026-08-28"},
			Schedule: []entity.ScheduleRow{
				{Grad: "Sd", Num: "1", Name: "Souza", Func: "Armeiro", Horario: "07:00/19:00"},
				{Grad: "Cb", Num: "2", Name: "Oliveira", Func: "Auxiliar", Horario: "19:00/07:00"},
			},
			Part2:   "Sem alterações.",
			Part3:   "1) MATERIAL BÉLICO:\nPISTOLA TS9:\n   TOTAL: 2",
			Part4:   "Sem ocorrências a registrar.",
			Closing: entity.PartClosing{Substitute: "CB OLIVEIRA", City: "Curitiba", Date: "28 de agosto de 2026"},
		},
	}
}

// lerEntrada extrai uma entrada do pacote ZIP pelo nome.
func lerEntrada(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		require.NoError(t, err)
		return string(raw)
	}
	t.Fatalf("entrada %s ausente no pacote", name)
	return ""
}

func TestRender_PacoteOPCCompleto(t *testing.T) {
	data, err := NewWordPartGenerator().Render(parteExemplo(), "Polícia Militar do Paraná")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err, "o .docx deve ser um ZIP válido")

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names)

	contentTypes := lerEntrada(t, data, "[Content_Types].xml")
	assert.Contains(t, contentTypes, "wordprocessingml.document.main+xml")

	rels := lerEntrada(t, data, "_rels/.rels")
	assert.Contains(t, rels, `Target="word/document.xml"`)
}

func TestRender_ConteudoDasCincoPartes(t *testing.T) {
	data, err := NewWordPartGenerator().Render(parteExemplo(), "Polícia Militar do Paraná")
	require.NoError(t, err)

	document := lerEntrada(t, data, "word/document.xml")

	assert.Contains(t, document, "LIVRO DE ALTERAÇÕES")
	assert.Contains(t, document, "POLÍCIA MILITAR DO PARANÁ")
	assert.Contains(t, document, "RESERVA DE ARMAMENTO")
	assert.Contains(t, document, "I – PARTE: ESCALA DE SERVIÇO")
	assert.Contains(t, document, "II – PARTE: INSTRUÇÃO")
	assert.Contains(t, document, "III – PARTE: ASSUNTOS GERAIS/ADMINISTRATIVOS")
	assert.Contains(t, document, "IV – PARTE: OCORRÊNCIAS")
	assert.Contains(t, document, "V – PARTE: PASSAGEM DE SERVIÇO")

	// Escala em tabela com cabeçalho e as duas linhas.
	assert.Contains(t, document, "<w:tbl>")
	assert.Contains(t, document, "HORÁRIO")
	assert.Contains(t, document, "Souza")
	assert.Contains(t, document, "Oliveira")

	// Fechamento e assinatura do autor.
	assert.Contains(t, document, "CB OLIVEIRA")
	assert.Contains(t, document, "Sgt Silva")
	assert.Contains(t, document, "MAT: 100001")
}

func TestRender_CamposVaziosRecebemPlaceholder(t *testing.T) {
	part := &entity.DailyPart{ID: "dp2", AuthorID: "100001", AuthorName: "Sgt Silva"}
	data, err := NewWordPartGenerator().Render(part, "")
	require.NoError(t, err)

	document := lerEntrada(t, data, "word/document.xml")
	assert.Contains(t, document, "POLÍCIA MILITAR", "instituição vazia cai no padrão")
	assert.Contains(t, document, "___", "campos do cabeçalho vazios viram traço")
	assert.Contains(t, document, "Nenhuma escala definida.")
	assert.Contains(t, document, "GRADUAÇÃO / NOME", "substituto vazio usa o texto padrão")
}
