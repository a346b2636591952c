package entity

import "time"

// Status de cautela. Transição única ABERTA -> FECHADA; nunca reabre.
const (
	CautelaAberta  = "ABERTA"
	CautelaFechada = "FECHADA"
)

// CautelaItem é uma linha de cautela: referência ao material com categoria e
// série capturadas no momento da saída, mais a quantidade emprestada
// (relevante apenas para categorias consumíveis; padrão 1).
type CautelaItem struct {
	MaterialID   string `json:"material_id"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number"`
	Quantity     int    `json:"quantity"`
}

// Cautela é o registro de custódia de material emprestado a um policial.
// Registros formam histórico append-only: nunca são excluídos.
// Invariante: Status == FECHADA se e somente se ReturnedAt está preenchido.
type Cautela struct {
	ID            string
	PersonnelID   string
	PersonnelName string // snapshot posto+numeral+nome de guerra no momento da saída
	ArmorerID     string // armeiro que liberou o material
	ArmorerName   string
	Items         []CautelaItem
	IssuedAt      time.Time
	ReturnedAt    *time.Time
	ArmorerInID   string // armeiro que recebeu a devolução
	ArmorerInName string
	Status        string
	Area          string // área de atuação no serviço
	NotesOut      string
	NotesIn       string
	SignatureOut  string // blob opaco (imagem); obrigatório na saída
	SignatureIn   string // opcional na devolução
}

// Open informa se a cautela ainda está em aberto.
func (c *Cautela) Open() bool {
	return c.Status == CautelaAberta
}

// HasMaterial informa se alguma linha referencia o material dado.
func (c *Cautela) HasMaterial(materialID string) bool {
	for _, it := range c.Items {
		if it.MaterialID == materialID {
			return true
		}
	}
	return false
}

// InvariantOK verifica o invariante FECHADA ⇔ ReturnedAt preenchido.
func (c *Cautela) InvariantOK() bool {
	if c.Status == CautelaFechada {
		return c.ReturnedAt != nil
	}
	return c.ReturnedAt == nil
}
