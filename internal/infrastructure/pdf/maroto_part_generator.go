// Package pdf gera a representação em PDF de uma edição do Livro de
// Alterações (parte diária do armeiro).
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  LIVRO DE ALTERAÇÕES                                         │
//	│  CABEÇALHO: visto do fiscal  │  instituição / CRPM / BPM     │
//	│  INTRODUÇÃO: período da parte diária                         │
//	│  I  – PARTE: ESCALA DE SERVIÇO (tabela)                      │
//	│  II – PARTE: INSTRUÇÃO                                       │
//	│  III– PARTE: ASSUNTOS GERAIS/ADMINISTRATIVOS                 │
//	│  IV – PARTE: OCORRÊNCIAS                                     │
//	│  V  – PARTE: PASSAGEM DE SERVIÇO                             │
//	│  ASSINATURA: cidade/data + nome + matrícula                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

var (
	colorBlack = &props.Color{Red: 0, Green: 0, Blue: 0}
	colorGray  = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ usecase.PartExporter = (*MarotoPartGenerator)(nil)

// MarotoPartGenerator implementa usecase.PartExporter usando Maroto v2.
type MarotoPartGenerator struct{}

// NewMarotoPartGenerator constrói o gerador.
func NewMarotoPartGenerator() *MarotoPartGenerator { return &MarotoPartGenerator{} }

// Render gera o PDF da edição e devolve seus bytes.
func (g *MarotoPartGenerator) Render(part *entity.DailyPart, institution string) ([]byte, error) {
	if institution == "" {
		institution = "Polícia Militar"
	}
	content := part.Content

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Livro de Alterações", true).
		WithAuthor(part.AuthorName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(10).Add(col.New(12).Add(
		text.New("LIVRO DE ALTERAÇÕES", props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Center, Top: 1,
		}),
	)))
	m.AddRows(headerRow(content.Header, institution))
	m.AddRows(line.NewRow(3))
	m.AddRows(introRow(content.Intro))

	m.AddRows(partTitleRow("I – PARTE: ESCALA DE SERVIÇO"))
	m.AddRows(scheduleHeaderRow())
	for _, r := range scheduleRows(content.Schedule) {
		m.AddRows(r)
	}

	m.AddRows(partTitleRow("II – PARTE: INSTRUÇÃO"))
	m.AddRows(textRows(content.Part2)...)

	m.AddRows(partTitleRow("III – PARTE: ASSUNTOS GERAIS/ADMINISTRATIVOS"))
	m.AddRows(textRows(content.Part3)...)

	m.AddRows(partTitleRow("IV – PARTE: OCORRÊNCIAS"))
	m.AddRows(textRows("Comunico-vos que:")...)
	m.AddRows(textRows(content.Part4)...)

	m.AddRows(partTitleRow("V – PARTE: PASSAGEM DE SERVIÇO"))
	m.AddRows(textRows(closingText(content.Closing))...)

	m.AddRows(signatureRows(part, content.Closing)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: visto do fiscal (esq) e identificação da unidade (dir).
func headerRow(h entity.PartHeader, institution string) core.Row {
	city := h.City
	if city == "" {
		city = "___"
	}
	return row.New(26).Add(
		col.New(4).Add(
			text.New("VISTO POR ALTERAÇÃO", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1}),
			text.New(orBlank(h.DateVisto), props.Text{Size: 10, Align: align.Center, Top: 8}),
			text.New(orDefault(h.Fiscal, "NOME FISCAL"), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 16}),
			text.New("RESPONSÁVEL", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 21}),
		),
		col.New(8).Add(
			text.New(strings.ToUpper(institution), props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 3}),
			text.New(fmt.Sprintf("CRPM %s  BPM %s  %s", orBlank(h.CRPM), orBlank(h.BPM), city),
				props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 11}),
			text.New("RESERVA DE ARMAMENTO", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 18}),
		),
	)
}

func introRow(intro entity.PartIntro) core.Row {
	return row.New(12).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"Parte diária do armeiro do %s batalhão do dia %s para o dia %s, ao Senhor Fiscal Administrativo.",
			orBlank(intro.BPM), orBlank(intro.DateStart), orBlank(intro.DateEnd),
		), props.Text{Size: 10, Top: 1}),
	))
}

func partTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 11, Top: 3}),
	))
}

func scheduleHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1}
	return row.New(6).Add(
		col.New(2).Add(text.New("GRAD", header)),
		col.New(1).Add(text.New("Nº", header)),
		col.New(5).Add(text.New("NOME", header)),
		col.New(2).Add(text.New("FUNÇÃO", header)),
		col.New(2).Add(text.New("HORÁRIO", header)),
	)
}

func scheduleRows(schedule []entity.ScheduleRow) []core.Row {
	if len(schedule) == 0 {
		return []core.Row{row.New(6).Add(col.New(12).Add(
			text.New("Nenhuma escala definida.", props.Text{Size: 9, Top: 1, Color: colorGray}),
		))}
	}
	cell := props.Text{Size: 9, Align: align.Center, Top: 1}
	out := make([]core.Row, 0, len(schedule))
	for _, s := range schedule {
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(orDefault(s.Grad, "-"), cell)),
			col.New(1).Add(text.New(s.Num, cell)),
			col.New(5).Add(text.New(s.Name, cell)),
			col.New(2).Add(text.New(s.Func, cell)),
			col.New(2).Add(text.New(s.Horario, cell)),
		))
	}
	return out
}

// textRows quebra texto multilinha em uma linha do PDF por parágrafo.
func textRows(content string) []core.Row {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		l := strings.TrimRight(l, "\r")
		h := float64(5)
		if l == "" {
			h = 2
		}
		out = append(out, row.New(h).Add(col.New(12).Add(
			text.New(l, props.Text{Size: 10, Top: 0}),
		)))
	}
	return out
}

func closingText(c entity.PartClosing) string {
	return fmt.Sprintf(
		"FI-LA AO MEU SUBSTITUTO LEGAL, O %s, A QUEM TRANSMITI TODAS AS ORDENS EM VIGOR, BEM COMO TODO MATERIAL A MEU CARGO.",
		orDefault(c.Substitute, "GRADUAÇÃO / NOME"),
	)
}

// signatureRows: cidade/data, linha de assinatura, nome e matrícula do autor.
func signatureRows(part *entity.DailyPart, closing entity.PartClosing) []core.Row {
	return []core.Row{
		row.New(12).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s, %s", orBlank(closing.City), orBlank(closing.Date)),
				props.Text{Size: 10, Align: align.Center, Top: 6}),
		)),
		line.NewRow(2, props.Line{Color: colorBlack, Thickness: 0.4, SizePercent: 40}),
		row.New(10).Add(col.New(12).Add(
			text.New(part.AuthorName, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1}),
			text.New("MAT: "+part.AuthorID, props.Text{Size: 10, Align: align.Center, Top: 6}),
		)),
	}
}

func orBlank(s string) string {
	if s == "" {
		return "___"
	}
	return s
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
