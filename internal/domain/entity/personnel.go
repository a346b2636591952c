package entity

import (
	"strings"
	"time"
)

// Personnel representa um policial do efetivo da unidade.
type Personnel struct {
	ID        string
	Name      string
	WarName   string // nome de guerra; se vazio, usa Name na composição
	Rank      string // posto/graduação (ex: Sd, Cb, Sgt, Ten)
	Numeral   string // numeral opcional (ex: "2º")
	Matricula string
	Area      string // área de atuação habitual
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName compõe o nome de apresentação: posto + numeral + nome de guerra
// (ou nome completo quando não há nome de guerra). Esta composição é capturada
// como snapshot imutável na cautela no momento da saída.
func (p Personnel) DisplayName() string {
	parts := make([]string, 0, 3)
	if p.Rank != "" {
		parts = append(parts, p.Rank)
	}
	if p.Numeral != "" {
		parts = append(parts, p.Numeral)
	}
	name := p.WarName
	if name == "" {
		name = p.Name
	}
	if name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}
