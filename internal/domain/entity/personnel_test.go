package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName_ComposicaoCompleta(t *testing.T) {
	p := Personnel{Name: "Marcos Vinícius Oliveira", WarName: "Oliveira", Rank: "Cb", Numeral: "2º"}
	assert.Equal(t, "Cb 2º Oliveira", p.DisplayName())
}

func TestDisplayName_SemNomeDeGuerraUsaNomeCompleto(t *testing.T) {
	p := Personnel{Name: "João Pedro de Souza", Rank: "Sd"}
	assert.Equal(t, "Sd João Pedro de Souza", p.DisplayName())
}

func TestDisplayName_SemNumeral(t *testing.T) {
	p := Personnel{Name: "Ana Paula Ferreira", WarName: "Ferreira", Rank: "Sgt"}
	assert.Equal(t, "Sgt Ferreira", p.DisplayName())
}

func TestDisplayName_UserMesmaComposicao(t *testing.T) {
	u := User{Name: "Carlos Alberto da Silva", WarName: "Silva", Rank: "Sgt"}
	assert.Equal(t, "Sgt Silva", u.DisplayName())
}

func TestMaterial_NormalizeLimpaCamposPorStatus(t *testing.T) {
	m := Material{Status: StatusDisponivel, PersonnelID: "p1", Location: "Oficina", Quantity: 0}
	m.Normalize()
	assert.Empty(t, m.PersonnelID, "detentor só existe quando CAUTELADO")
	assert.Empty(t, m.Location, "local só existe em MANUTENCAO/RETIDO")
	assert.Equal(t, 1, m.Quantity)

	m = Material{Status: StatusManutencao, Location: "Oficina", Quantity: 1}
	m.Normalize()
	assert.Equal(t, "Oficina", m.Location)
}

func TestMaterial_InvariantDetentorCautelado(t *testing.T) {
	assert.True(t, (&Material{Status: StatusCautelado, PersonnelID: "p1"}).InvariantOK())
	assert.False(t, (&Material{Status: StatusCautelado}).InvariantOK())
	assert.False(t, (&Material{Status: StatusDisponivel, PersonnelID: "p1"}).InvariantOK())
}

func TestMaterial_RegrasPorCategoria(t *testing.T) {
	assert.True(t, IsConsumable(CategoriaMunicao))
	assert.False(t, IsConsumable(CategoriaArmamento))

	assert.True(t, QuantityEditable(CategoriaMunicao))
	assert.True(t, QuantityEditable(CategoriaCarregador))
	assert.False(t, QuantityEditable(CategoriaColete))

	assert.True(t, SerialRequired(CategoriaArmamento))
	assert.True(t, SerialRequired(CategoriaRadio))
	assert.False(t, SerialRequired(CategoriaMunicao))
	assert.False(t, SerialRequired(CategoriaAlgema))
}

func TestCautela_InvariantFechadaComReturnedAt(t *testing.T) {
	aberta := &Cautela{Status: CautelaAberta}
	assert.True(t, aberta.InvariantOK())
	assert.True(t, aberta.Open())

	fechadaSemData := &Cautela{Status: CautelaFechada}
	assert.False(t, fechadaSemData.InvariantOK())
}
