// Package docx gera uma edição do Livro de Alterações como documento Word
// (.docx): um pacote ZIP com o WordprocessingML mínimo montado via etree.
package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/sentinela-pm/sentinela-api/internal/application/usecase"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// Namespaces do Open Packaging Conventions e do WordprocessingML.
const (
	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsWordML        = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relOfficeDoc    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	ctDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
)

var _ usecase.PartExporter = (*WordPartGenerator)(nil)

// WordPartGenerator implementa usecase.PartExporter gerando .docx.
type WordPartGenerator struct{}

// NewWordPartGenerator constrói o gerador.
func NewWordPartGenerator() *WordPartGenerator { return &WordPartGenerator{} }

// Render gera o .docx da edição e devolve seus bytes.
func (g *WordPartGenerator) Render(part *entity.DailyPart, institution string) ([]byte, error) {
	if institution == "" {
		institution = "Polícia Militar"
	}
	document, err := buildDocumentXML(part, institution)
	if err != nil {
		return nil, err
	}

	contentTypes, err := buildContentTypesXML()
	if err != nil {
		return nil, err
	}
	rels, err := buildRelsXML()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	entries := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", contentTypes},
		{"_rels/.rels", rels},
		{"word/document.xml", document},
	}
	for _, e := range entries {
		fw, err := zw.Create(e.name)
		if err != nil {
			return nil, fmt.Errorf("docx: criar entrada %s: %w", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			return nil, fmt.Errorf("docx: escrever %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: fechar pacote: %w", err)
	}
	return buf.Bytes(), nil
}

func buildContentTypesXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsContentTypes)
	xmlDefault := types.CreateElement("Default")
	xmlDefault.CreateAttr("Extension", "xml")
	xmlDefault.CreateAttr("ContentType", "application/xml")
	relsDefault := types.CreateElement("Default")
	relsDefault.CreateAttr("Extension", "rels")
	relsDefault.CreateAttr("ContentType", "application/vnd.openxmlformats-package.relationships+xml")
	override := types.CreateElement("Override")
	override.CreateAttr("PartName", "/word/document.xml")
	override.CreateAttr("ContentType", ctDocument)
	return doc.WriteToBytes()
}

func buildRelsXML() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	rels := doc.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsRelationships)
	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", relOfficeDoc)
	rel.CreateAttr("Target", "word/document.xml")
	return doc.WriteToBytes()
}

func buildDocumentXML(part *entity.DailyPart, institution string) ([]byte, error) {
	content := part.Content

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsWordML)
	body := root.CreateElement("w:body")

	addParagraph(body, "LIVRO DE ALTERAÇÕES", parOpts{bold: true, size: 28, center: true})
	addParagraph(body, strings.ToUpper(institution), parOpts{bold: true, size: 24, center: true})
	addParagraph(body, fmt.Sprintf("CRPM %s  BPM %s  %s",
		orBlank(content.Header.CRPM), orBlank(content.Header.BPM), orBlank(content.Header.City)),
		parOpts{bold: true, center: true})
	addParagraph(body, "RESERVA DE ARMAMENTO", parOpts{bold: true, center: true})
	addParagraph(body, fmt.Sprintf("VISTO POR ALTERAÇÃO: %s — %s (RESPONSÁVEL)",
		orBlank(content.Header.DateVisto), orBlank(content.Header.Fiscal)), parOpts{})
	addParagraph(body, "", parOpts{})

	addParagraph(body, fmt.Sprintf(
		"Parte diária do armeiro do %s batalhão do dia %s para o dia %s, ao Senhor Fiscal Administrativo.",
		orBlank(content.Intro.BPM), orBlank(content.Intro.DateStart), orBlank(content.Intro.DateEnd)), parOpts{})
	addParagraph(body, "", parOpts{})

	addParagraph(body, "I – PARTE: ESCALA DE SERVIÇO", parOpts{bold: true})
	addScheduleTable(body, content.Schedule)
	addParagraph(body, "", parOpts{})

	addParagraph(body, "II – PARTE: INSTRUÇÃO", parOpts{bold: true})
	addMultiline(body, content.Part2)

	addParagraph(body, "III – PARTE: ASSUNTOS GERAIS/ADMINISTRATIVOS", parOpts{bold: true})
	addMultiline(body, content.Part3)

	addParagraph(body, "IV – PARTE: OCORRÊNCIAS", parOpts{bold: true})
	addParagraph(body, "Comunico-vos que:", parOpts{})
	addMultiline(body, content.Part4)

	addParagraph(body, "V – PARTE: PASSAGEM DE SERVIÇO", parOpts{bold: true})
	addParagraph(body, fmt.Sprintf(
		"FI-LA AO MEU SUBSTITUTO LEGAL, O %s, A QUEM TRANSMITI TODAS AS ORDENS EM VIGOR, BEM COMO TODO MATERIAL A MEU CARGO.",
		orDefault(content.Closing.Substitute, "GRADUAÇÃO / NOME")), parOpts{})
	addParagraph(body, "", parOpts{})

	addParagraph(body, fmt.Sprintf("%s, %s", orBlank(content.Closing.City), orBlank(content.Closing.Date)), parOpts{center: true})
	addParagraph(body, "______________________________", parOpts{center: true})
	addParagraph(body, part.AuthorName, parOpts{bold: true, center: true})
	addParagraph(body, "MAT: "+part.AuthorID, parOpts{center: true})

	body.CreateElement("w:sectPr")
	return doc.WriteToBytes()
}

type parOpts struct {
	bold   bool
	center bool
	size   int // half-points; zero usa o padrão do Word
}

func addParagraph(parent *etree.Element, textContent string, opts parOpts) {
	p := parent.CreateElement("w:p")
	if opts.center {
		pPr := p.CreateElement("w:pPr")
		jc := pPr.CreateElement("w:jc")
		jc.CreateAttr("w:val", "center")
	}
	r := p.CreateElement("w:r")
	if opts.bold || opts.size > 0 {
		rPr := r.CreateElement("w:rPr")
		if opts.bold {
			rPr.CreateElement("w:b")
		}
		if opts.size > 0 {
			sz := rPr.CreateElement("w:sz")
			sz.CreateAttr("w:val", fmt.Sprintf("%d", opts.size))
		}
	}
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(textContent)
}

func addMultiline(parent *etree.Element, content string) {
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		addParagraph(parent, strings.TrimRight(line, "\r"), parOpts{})
	}
	addParagraph(parent, "", parOpts{})
}

func addScheduleTable(parent *etree.Element, schedule []entity.ScheduleRow) {
	if len(schedule) == 0 {
		addParagraph(parent, "Nenhuma escala definida.", parOpts{})
		return
	}
	tbl := parent.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
	}

	addTableRow(tbl, true, "GRAD", "Nº", "NOME", "FUNÇÃO", "HORÁRIO")
	for _, s := range schedule {
		addTableRow(tbl, false, orDefault(s.Grad, "-"), s.Num, s.Name, s.Func, s.Horario)
	}
}

func addTableRow(tbl *etree.Element, header bool, cells ...string) {
	tr := tbl.CreateElement("w:tr")
	for _, c := range cells {
		tc := tr.CreateElement("w:tc")
		addParagraph(tc, c, parOpts{bold: header, center: true})
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
