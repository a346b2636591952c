package entity

import "time"

// Categorias de material bélico e de apoio.
const (
	CategoriaArmamento  = "ARMAMENTO"
	CategoriaColete     = "COLETE"
	CategoriaRadio      = "RADIO"
	CategoriaMunicao    = "MUNICAO" // consumível: cautela registra quantidade na linha, não muda status do item
	CategoriaAlgema     = "ALGEMA"
	CategoriaCarregador = "CARREGADOR"
)

// Status de material.
const (
	StatusDisponivel = "DISPONIVEL"
	StatusCautelado  = "CAUTELADO"
	StatusManutencao = "MANUTENCAO"
	StatusRetido     = "RETIDO"
	StatusExtraviado = "EXTRAVIADO"
)

// Categorias reconhece todas as categorias válidas.
var Categorias = []string{
	CategoriaArmamento, CategoriaColete, CategoriaRadio,
	CategoriaMunicao, CategoriaAlgema, CategoriaCarregador,
}

// MaterialStatuses reconhece todos os status válidos.
var MaterialStatuses = []string{
	StatusDisponivel, StatusCautelado, StatusManutencao,
	StatusRetido, StatusExtraviado,
}

// Material representa um item do acervo da reserva de armamento.
// Invariantes: PersonnelID preenchido se e somente se Status == CAUTELADO;
// Location preenchido apenas quando Status é MANUTENCAO ou RETIDO.
// Quantity é o estoque (relevante para MUNICAO); a cautela nunca o altera.
type Material struct {
	ID           string
	Category     string
	Type         string // ex: Pistola, Colete Nível III
	Model        string
	SerialNumber string // série ou lote; opcional para MUNICAO/CARREGADOR/ALGEMA
	Manufacturer string
	Caliber      string // apenas ARMAMENTO e MUNICAO
	Condition    string // Novo, Bom, Regular, Ruim
	Status       string
	PersonnelID  string     // detentor atual, somente quando CAUTELADO
	Location     string     // destino, somente quando MANUTENCAO/RETIDO
	Quantity     int        // estoque para consumíveis (MUNICAO); 1 para itens unitários
	ExpiryDate   *time.Time // validade, apenas COLETE
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsConsumable indica se a categoria é consumível não rastreada por unidade.
// MUNICAO é a única categoria consumível: a cautela registra a quantidade
// na linha e o status do item não muda.
func IsConsumable(category string) bool {
	return category == CategoriaMunicao
}

// QuantityEditable indica se a linha de cautela aceita quantidade > 1.
func QuantityEditable(category string) bool {
	return category == CategoriaMunicao || category == CategoriaCarregador
}

// SerialRequired indica se número de série é obrigatório para a categoria.
func SerialRequired(category string) bool {
	switch category {
	case CategoriaMunicao, CategoriaCarregador, CategoriaAlgema:
		return false
	}
	return true
}

// ValidCategory informa se a categoria é reconhecida.
func ValidCategory(c string) bool {
	for _, v := range Categorias {
		if v == c {
			return true
		}
	}
	return false
}

// ValidStatus informa se o status é reconhecido.
func ValidStatus(s string) bool {
	for _, v := range MaterialStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Normalize limpa campos que não fazem sentido para o status atual:
// detentor apenas quando CAUTELADO, local apenas quando MANUTENCAO/RETIDO.
func (m *Material) Normalize() {
	if m.Status != StatusCautelado {
		m.PersonnelID = ""
	}
	if m.Status != StatusManutencao && m.Status != StatusRetido {
		m.Location = ""
	}
	if m.Quantity <= 0 {
		m.Quantity = 1
	}
}

// InvariantOK verifica o invariante detentor ⇔ CAUTELADO.
func (m *Material) InvariantOK() bool {
	if m.Status == StatusCautelado {
		return m.PersonnelID != ""
	}
	return m.PersonnelID == ""
}
