// Package report consolida números do acervo: contadores do painel e o
// resumo textual usado na III Parte do Livro de Alterações.
package report

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

// UseCase casos de uso de relatório.
type UseCase struct {
	materialRepo  repository.MaterialRepository
	cautelaRepo   repository.CautelaRepository
	personnelRepo repository.PersonnelRepository
}

// NewUseCase constrói o caso de uso.
func NewUseCase(
	materialRepo repository.MaterialRepository,
	cautelaRepo repository.CautelaRepository,
	personnelRepo repository.PersonnelRepository,
) *UseCase {
	return &UseCase{materialRepo: materialRepo, cautelaRepo: cautelaRepo, personnelRepo: personnelRepo}
}

// Dashboard devolve os contadores do painel inicial.
func (uc *UseCase) Dashboard() (*dto.DashboardResponse, error) {
	byStatus, err := uc.materialRepo.CountByStatus()
	if err != nil {
		return nil, err
	}
	total := 0
	for _, n := range byStatus {
		total += n
	}
	open, err := uc.cautelaRepo.CountOpen()
	if err != nil {
		return nil, err
	}
	personnel, err := uc.personnelRepo.List()
	if err != nil {
		return nil, err
	}
	active := 0
	for _, p := range personnel {
		if p.Active {
			active++
		}
	}
	materials, err := uc.materialRepo.List()
	if err != nil {
		return nil, err
	}
	summary, err := uc.InventorySummary()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalMaterials:   total,
		ByStatus:         byStatus,
		OpenCautelas:     open,
		ActivePersonnel:  active,
		InMaintenance:    byStatus[entity.StatusManutencao],
		ExpiringVests:    contarColetesVencendo(materials, time.Now()),
		InventorySummary: summary,
	}, nil
}

// contarColetesVencendo conta coletes já vencidos ou a vencer em 30 dias.
func contarColetesVencendo(materials []*entity.Material, now time.Time) int {
	limite := now.AddDate(0, 0, 30)
	n := 0
	for _, m := range materials {
		if m.Category != entity.CategoriaColete || m.ExpiryDate == nil {
			continue
		}
		if m.ExpiryDate.Before(limite) {
			n++
		}
	}
	return n
}

// grupo consolida um tipo+modelo de material.
type grupo struct {
	nome       string
	total      int
	disponivel int
	cautelado  int
	manutencao int
}

// InventorySummary monta o texto da III Parte (assuntos administrativos):
// material bélico por tipo/modelo, comunicação, proteção balística,
// sinalização e diversos. Ordem alfabética para saída determinística.
func (uc *UseCase) InventorySummary() (string, error) {
	materials, err := uc.materialRepo.List()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Sem alterações administrativas.\n\n")

	b.WriteString("1) MATERIAL BÉLICO:\n")
	armas := agrupar(materials, entity.CategoriaArmamento)
	if len(armas) == 0 {
		b.WriteString("Nenhum armamento cadastrado.\n")
	}
	for _, g := range armas {
		b.WriteString(strings.ToUpper(g.nome))
		b.WriteString(":\n")
		writeLinha(&b, "RETIDAS", g.disponivel)
		writeLinha(&b, "CAUTELADAS", g.cautelado)
		writeLinha(&b, "MANUTENÇÃO", g.manutencao)
		writeLinha(&b, "TOTAL", g.total)
		b.WriteString("\n")
	}

	b.WriteString("2) MATERIAL DE COMUNICAÇÃO:\nHT:\n")
	var reserva, cautelados, defeitos int
	for _, g := range agrupar(materials, entity.CategoriaRadio) {
		reserva += g.disponivel
		cautelados += g.cautelado
		defeitos += g.manutencao
	}
	writeResumo(&b, "RESERVA", reserva)
	writeResumo(&b, "CAUTELADOS", cautelados)
	writeResumo(&b, "DEFEITOS", defeitos)
	b.WriteString("\n")

	b.WriteString("3) MATERIAL DE PROTEÇÃO BALÍSTICA:\nCOLETES BALÍSTICOS:\n")
	coletes := 0
	for _, g := range agrupar(materials, entity.CategoriaColete) {
		coletes += g.total
	}
	writeResumo(&b, "TOTAL", coletes)
	b.WriteString("\n")

	b.WriteString("4) MATERIAL DE SINALIZAÇÃO:\nSem alterações.\n\n")
	b.WriteString("5) MATERIAIS DIVERSOS:\nChaves da reserva; Livro de Cautela; Livro de Alterações; Móveis e Utensílios; Ar Condicionado; Bebedouro.")
	return b.String(), nil
}

// agrupar consolida a categoria por "tipo modelo", em ordem alfabética.
// Consumíveis contam pela quantidade em estoque; unitários contam 1.
func agrupar(materials []*entity.Material, category string) []grupo {
	porNome := make(map[string]*grupo)
	var ordem []string
	for _, m := range materials {
		if m.Category != category {
			continue
		}
		nome := strings.TrimSpace(m.Type + " " + m.Model)
		g, ok := porNome[nome]
		if !ok {
			g = &grupo{nome: nome}
			porNome[nome] = g
			ordem = append(ordem, nome)
		}
		qty := m.Quantity
		if qty <= 0 {
			qty = 1
		}
		g.total += qty
		switch m.Status {
		case entity.StatusDisponivel:
			g.disponivel += qty
		case entity.StatusCautelado:
			g.cautelado += qty
		case entity.StatusManutencao:
			g.manutencao += qty
		}
	}
	sort.Strings(ordem)
	out := make([]grupo, 0, len(ordem))
	for _, n := range ordem {
		out = append(out, *porNome[n])
	}
	return out
}

func writeLinha(b *strings.Builder, label string, n int) {
	b.WriteString("   ")
	writeResumo(b, label, n)
}

func writeResumo(b *strings.Builder, label string, n int) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(strconv.Itoa(n))
	b.WriteString("\n")
}
