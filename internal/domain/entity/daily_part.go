package entity

import "time"

// Status de parte diária (Livro de Alterações).
const (
	PartRascunho   = "RASCUNHO"
	PartFinalizada = "FINALIZADA"
)

// ScheduleRow é uma linha da escala de serviço (I Parte).
type ScheduleRow struct {
	Grad    string `json:"grad"`
	Num     string `json:"num"`
	Name    string `json:"name"`
	Func    string `json:"func"`
	Horario string `json:"horario"`
}

// PartHeader cabeçalho do livro: visto do fiscal administrativo e unidade.
type PartHeader struct {
	Fiscal    string `json:"fiscal"`
	DateVisto string `json:"date_visto"` // AAAA-MM-DD
	CRPM      string `json:"crpm"`
	BPM       string `json:"bpm"`
	City      string `json:"city"`
}

// PartIntro introdução: período da parte diária.
type PartIntro struct {
	BPM       string `json:"bpm"`
	DateStart string `json:"date_start"`
	DateEnd   string `json:"date_end"`
}

// PartClosing V Parte: passagem de serviço e local/data da assinatura.
type PartClosing struct {
	Substitute string `json:"substitute"`
	City       string `json:"city"`
	Date       string `json:"date"`
}

// DailyPartContent agrupa as cinco partes do livro.
type DailyPartContent struct {
	Header   PartHeader    `json:"header"`
	Intro    PartIntro     `json:"intro"`
	Schedule []ScheduleRow `json:"part1"`
	Part2    string        `json:"part2"` // instrução
	Part3    string        `json:"part3"` // assuntos gerais/administrativos (resumo do acervo)
	Part4    string        `json:"part4"` // ocorrências
	Closing  PartClosing   `json:"part5"`
}

// DailyPart é uma edição do Livro de Alterações.
// Invariante: FINALIZADA exige assinatura; parte finalizada não volta a rascunho.
type DailyPart struct {
	ID         string
	AuthorID   string // matrícula do armeiro
	AuthorName string
	Status     string // RASCUNHO, FINALIZADA
	Signature  string // blob opaco; obrigatório para finalizar
	Content    DailyPartContent
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
