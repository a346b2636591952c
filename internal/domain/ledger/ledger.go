// Package ledger implementa o núcleo de cautelas como funções puras sobre um
// snapshot de estado pertencente ao chamador. Cada operação valida, e em caso
// de sucesso devolve um novo State — nunca há escrita parcial. A camada de
// aplicação é responsável por persistir o snapshot resultante e registrar a
// auditoria.
//
// Decisão de produto preservada: a quantidade de munição cautelada fica
// registrada apenas na linha da cautela; o estoque (Material.Quantity) é um
// campo independente mantido pelo inventário e nunca é debitado ou restituído
// aqui.
package ledger

import (
	"fmt"
	"time"

	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// State é o snapshot de materiais e cautelas sobre o qual o núcleo opera.
// Cautelas em ordem de apresentação: saída mais recente primeiro.
type State struct {
	Materials []entity.Material
	Cautelas  []entity.Cautela
}

// clone copia o snapshot (slices novos; itens de cautela copiados por valor).
func (s State) clone() State {
	out := State{
		Materials: make([]entity.Material, len(s.Materials)),
		Cautelas:  make([]entity.Cautela, len(s.Cautelas)),
	}
	copy(out.Materials, s.Materials)
	for i, c := range s.Cautelas {
		items := make([]entity.CautelaItem, len(c.Items))
		copy(items, c.Items)
		c.Items = items
		out.Cautelas[i] = c
	}
	return out
}

// materialIndex localiza um material no snapshot pelo id.
func (s State) materialIndex(id string) int {
	for i := range s.Materials {
		if s.Materials[i].ID == id {
			return i
		}
	}
	return -1
}

// IssueLine referencia um material e a quantidade a cautelar (padrão 1;
// > 1 apenas para categorias consumíveis/editáveis).
type IssueLine struct {
	MaterialID string
	Quantity   int
}

// IssueInput entrada para a saída de material. ID e Now são injetados pela
// camada de aplicação para manter o núcleo determinístico e sem dependências.
type IssueInput struct {
	CautelaID string
	Person    entity.Personnel
	Armorer   entity.User
	Lines     []IssueLine
	Area      string
	Notes     string
	Signature string // obrigatório
	Now       time.Time
}

// Issue cria uma cautela ABERTA. Materiais de categoria não consumível passam
// a CAUTELADO com o detentor preenchido; linhas de MUNICAO não alteram o item.
// Nome de apresentação do policial e do armeiro são capturados como snapshot
// imutável. Tudo-ou-nada: qualquer validação reprovada devolve o estado
// original intacto.
func Issue(st State, in IssueInput) (State, *entity.Cautela, error) {
	if in.Person.ID == "" || len(in.Lines) == 0 {
		return st, nil, fmt.Errorf("saída de material: policial e ao menos um item são obrigatórios: %w", domain.ErrInvalidInput)
	}
	if !in.Person.Active {
		return st, nil, fmt.Errorf("saída de material: %w", domain.ErrPessoaInativa)
	}
	if in.Signature == "" {
		return st, nil, fmt.Errorf("saída de material: %w", domain.ErrMissingSignature)
	}

	// Valida todas as linhas contra o snapshot antes de qualquer mutação.
	seen := make(map[string]bool, len(in.Lines))
	for _, ln := range in.Lines {
		if ln.MaterialID == "" || ln.Quantity < 0 {
			return st, nil, fmt.Errorf("linha de cautela inválida: %w", domain.ErrInvalidInput)
		}
		if seen[ln.MaterialID] {
			return st, nil, fmt.Errorf("material repetido na cautela: %w", domain.ErrInvalidInput)
		}
		seen[ln.MaterialID] = true

		idx := st.materialIndex(ln.MaterialID)
		if idx < 0 {
			return st, nil, fmt.Errorf("material %s: %w", ln.MaterialID, domain.ErrNotFound)
		}
		if st.Materials[idx].Status != entity.StatusDisponivel {
			return st, nil, fmt.Errorf("material %s (%s): %w",
				st.Materials[idx].SerialNumber, st.Materials[idx].Status, domain.ErrMaterialIndisponivel)
		}
	}

	next := st.clone()

	area := in.Area
	if area == "" {
		area = in.Person.Area
	}

	cautela := entity.Cautela{
		ID:            in.CautelaID,
		PersonnelID:   in.Person.ID,
		PersonnelName: in.Person.DisplayName(),
		ArmorerID:     in.Armorer.ID,
		ArmorerName:   in.Armorer.DisplayName(),
		IssuedAt:      in.Now,
		Status:        entity.CautelaAberta,
		Area:          area,
		NotesOut:      in.Notes,
		SignatureOut:  in.Signature,
	}

	for _, ln := range in.Lines {
		idx := next.materialIndex(ln.MaterialID)
		mat := &next.Materials[idx]

		qty := ln.Quantity
		if qty == 0 || !entity.QuantityEditable(mat.Category) {
			qty = 1
		}
		cautela.Items = append(cautela.Items, entity.CautelaItem{
			MaterialID:   mat.ID,
			Category:     mat.Category,
			SerialNumber: mat.SerialNumber,
			Quantity:     qty,
		})

		// Consumíveis: só a linha registra a quantidade; o item não muda.
		if entity.IsConsumable(mat.Category) {
			continue
		}
		mat.Status = entity.StatusCautelado
		mat.PersonnelID = in.Person.ID
	}

	// Mais recente primeiro.
	next.Cautelas = append([]entity.Cautela{cautela}, next.Cautelas...)
	return next, &next.Cautelas[0], nil
}

// CloseInput entrada para a devolução. Assinatura do recebimento é opcional.
type CloseInput struct {
	CautelaID string
	Armorer   entity.User
	Signature string
	Notes     string
	Now       time.Time
}

// Close fecha uma cautela ABERTA: grava o momento da devolução, o armeiro
// recebedor (com snapshot de nome) e a assinatura/observação opcionais.
// Materiais não consumíveis voltam a DISPONIVEL com o detentor limpo.
// Cautela já FECHADA devolve conflito; id desconhecido, não-encontrado —
// em ambos os casos o estado fica intacto. A transição é terminal.
func Close(st State, in CloseInput) (State, *entity.Cautela, error) {
	pos := -1
	for i := range st.Cautelas {
		if st.Cautelas[i].ID == in.CautelaID {
			pos = i
			break
		}
	}
	if pos < 0 {
		return st, nil, fmt.Errorf("cautela %s: %w", in.CautelaID, domain.ErrNotFound)
	}
	if st.Cautelas[pos].Status == entity.CautelaFechada {
		return st, nil, fmt.Errorf("cautela %s já devolvida: %w", in.CautelaID, domain.ErrConflict)
	}

	next := st.clone()
	c := &next.Cautelas[pos]

	returnedAt := in.Now
	c.Status = entity.CautelaFechada
	c.ReturnedAt = &returnedAt
	c.ArmorerInID = in.Armorer.ID
	c.ArmorerInName = in.Armorer.DisplayName()
	c.SignatureIn = in.Signature
	c.NotesIn = in.Notes

	for _, it := range c.Items {
		if entity.IsConsumable(it.Category) {
			continue
		}
		idx := next.materialIndex(it.MaterialID)
		if idx < 0 {
			continue // item excluído do acervo após a saída; nada a restaurar
		}
		mat := &next.Materials[idx]
		mat.Status = entity.StatusDisponivel
		mat.PersonnelID = ""
	}

	return next, c, nil
}

// OpenForMaterial devolve a cautela ABERTA que referencia o material, ou nil.
// Varredura linear: o volume esperado é de dezenas a poucos milhares de
// registros.
func OpenForMaterial(st State, materialID string) *entity.Cautela {
	for i := range st.Cautelas {
		if st.Cautelas[i].Open() && st.Cautelas[i].HasMaterial(materialID) {
			return &st.Cautelas[i]
		}
	}
	return nil
}
