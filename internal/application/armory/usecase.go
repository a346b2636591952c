// Package armory orquestra as operações transacionais do livro de cautelas:
// saída e devolução de material com bloqueio de linha (SELECT FOR UPDATE) e
// Commit/Rollback. A regra de negócio em si vive em domain/ledger; aqui só
// carregamos o snapshot, executamos o núcleo e persistimos o resultado.
package armory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain"
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
	"github.com/sentinela-pm/sentinela-api/internal/domain/ledger"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

// CautelaUseCase casos de uso do livro de cautelas.
type CautelaUseCase struct {
	txRunner      TxRunner
	cautelaRepo   repository.CautelaRepository
	personnelRepo repository.PersonnelRepository
	userRepo      repository.UserRepository
	logRepo       repository.SystemLogRepository
}

// NewCautelaUseCase constrói o caso de uso.
func NewCautelaUseCase(
	txRunner TxRunner,
	cautelaRepo repository.CautelaRepository,
	personnelRepo repository.PersonnelRepository,
	userRepo repository.UserRepository,
	logRepo repository.SystemLogRepository,
) *CautelaUseCase {
	return &CautelaUseCase{
		txRunner:      txRunner,
		cautelaRepo:   cautelaRepo,
		personnelRepo: personnelRepo,
		userRepo:      userRepo,
		logRepo:       logRepo,
	}
}

// Issue registra a saída de material: bloqueia as linhas dos materiais em
// ordem determinística, executa o núcleo e persiste cautela + materiais na
// mesma transação. A auditoria é gravada após o commit.
func (uc *CautelaUseCase) Issue(ctx context.Context, armorerID string, in dto.IssueCautelaRequest) (*dto.CautelaResponse, error) {
	if in.PersonnelID == "" || len(in.Items) == 0 {
		return nil, fmt.Errorf("saída de material: policial e itens são obrigatórios: %w", domain.ErrInvalidInput)
	}

	person, err := uc.personnelRepo.GetByID(in.PersonnelID)
	if err != nil {
		return nil, err
	}
	if person == nil {
		return nil, fmt.Errorf("policial %s: %w", in.PersonnelID, domain.ErrNotFound)
	}
	armorer, err := uc.userRepo.GetByID(armorerID)
	if err != nil {
		return nil, err
	}
	if armorer == nil {
		return nil, fmt.Errorf("armeiro %s: %w", armorerID, domain.ErrNotFound)
	}

	lines := make([]ledger.IssueLine, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, ledger.IssueLine{MaterialID: it.MaterialID, Quantity: it.Quantity})
	}

	input := ledger.IssueInput{
		CautelaID: uuid.New().String(),
		Person:    *person,
		Armorer:   *armorer,
		Lines:     lines,
		Area:      in.Area,
		Notes:     in.Notes,
		Signature: in.Signature,
		Now:       time.Now(),
	}

	var created *entity.Cautela
	err = uc.txRunner.Run(ctx, func(materials repository.MaterialRepository, cautelas repository.CautelaRepository) error {
		state, err := lockMaterials(materials, lines)
		if err != nil {
			return err
		}
		next, cautela, err := ledger.Issue(state, input)
		if err != nil {
			return err
		}
		for i := range next.Materials {
			if next.Materials[i] != state.Materials[i] {
				m := next.Materials[i]
				if err := materials.Update(&m); err != nil {
					return err
				}
			}
		}
		if err := cautelas.Create(cautela); err != nil {
			return err
		}
		created = cautela
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit(armorer.DisplayName(), "SAIDA_MATERIAL",
		fmt.Sprintf("Cautela %s para %s (%d item(ns))", created.ID, created.PersonnelName, len(created.Items)))
	return toCautelaResponse(created), nil
}

// Close registra a devolução. Transição terminal: cautela já FECHADA devolve
// conflito. Assinatura do recebimento é opcional.
func (uc *CautelaUseCase) Close(ctx context.Context, armorerID, cautelaID string, in dto.CloseCautelaRequest) (*dto.CautelaResponse, error) {
	armorer, err := uc.userRepo.GetByID(armorerID)
	if err != nil {
		return nil, err
	}
	if armorer == nil {
		return nil, fmt.Errorf("armeiro %s: %w", armorerID, domain.ErrNotFound)
	}

	input := ledger.CloseInput{
		CautelaID: cautelaID,
		Armorer:   *armorer,
		Signature: in.Signature,
		Notes:     in.Notes,
		Now:       time.Now(),
	}

	var closed *entity.Cautela
	err = uc.txRunner.Run(ctx, func(materials repository.MaterialRepository, cautelas repository.CautelaRepository) error {
		cautela, err := cautelas.GetForUpdate(cautelaID)
		if err != nil {
			return err
		}
		if cautela == nil {
			return fmt.Errorf("cautela %s: %w", cautelaID, domain.ErrNotFound)
		}

		lines := make([]ledger.IssueLine, 0, len(cautela.Items))
		for _, it := range cautela.Items {
			lines = append(lines, ledger.IssueLine{MaterialID: it.MaterialID})
		}
		state, err := lockMaterials(materials, lines)
		if err != nil {
			return err
		}
		state.Cautelas = []entity.Cautela{*cautela}

		next, done, err := ledger.Close(state, input)
		if err != nil {
			return err
		}
		for i := range next.Materials {
			if next.Materials[i] != state.Materials[i] {
				m := next.Materials[i]
				if err := materials.Update(&m); err != nil {
					return err
				}
			}
		}
		if err := cautelas.Update(done); err != nil {
			return err
		}
		closed = done
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit(armorer.DisplayName(), "DEVOLUCAO_MATERIAL",
		fmt.Sprintf("Cautela %s devolvida por %s", closed.ID, closed.PersonnelName))
	return toCautelaResponse(closed), nil
}

// lockMaterials carrega com FOR UPDATE todos os materiais referenciados,
// sempre em ordem de id para evitar deadlock entre transações concorrentes.
// Material inexistente não aborta aqui: o núcleo decide (na devolução um item
// excluído do acervo é tolerado).
func lockMaterials(materials repository.MaterialRepository, lines []ledger.IssueLine) (ledger.State, error) {
	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, ln := range lines {
		if !seen[ln.MaterialID] {
			seen[ln.MaterialID] = true
			ids = append(ids, ln.MaterialID)
		}
	}
	sort.Strings(ids)

	var state ledger.State
	for _, id := range ids {
		m, err := materials.GetForUpdate(id)
		if err != nil {
			return ledger.State{}, err
		}
		if m != nil {
			state.Materials = append(state.Materials, *m)
		}
	}
	return state, nil
}

// GetByID busca uma cautela.
func (uc *CautelaUseCase) GetByID(id string) (*dto.CautelaResponse, error) {
	c, err := uc.cautelaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCautelaResponse(c), nil
}

// List devolve o histórico completo, mais recente primeiro.
func (uc *CautelaUseCase) List() (*dto.CautelaListResponse, error) {
	list, err := uc.cautelaRepo.List()
	if err != nil {
		return nil, err
	}
	return toCautelaList(list), nil
}

// ListOpen devolve apenas as cautelas ABERTAS.
func (uc *CautelaUseCase) ListOpen() (*dto.CautelaListResponse, error) {
	list, err := uc.cautelaRepo.ListOpen()
	if err != nil {
		return nil, err
	}
	return toCautelaList(list), nil
}

// Search busca no histórico com filtros opcionais.
func (uc *CautelaUseCase) Search(in dto.CautelaSearchRequest) (*dto.CautelaListResponse, error) {
	in.DefaultPage()
	filter := repository.CautelaFilter{
		PersonnelID: in.PersonnelID,
		MaterialID:  in.MaterialID,
		Status:      in.Status,
		Area:        in.Area,
		Limit:       in.Limit,
		Offset:      in.Offset,
	}
	if in.From != "" {
		t, err := time.Parse("2006-01-02", in.From)
		if err != nil {
			return nil, fmt.Errorf("data inicial inválida: %w", domain.ErrInvalidInput)
		}
		filter.From = &t
	}
	if in.To != "" {
		t, err := time.Parse("2006-01-02", in.To)
		if err != nil {
			return nil, fmt.Errorf("data final inválida: %w", domain.ErrInvalidInput)
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	list, err := uc.cautelaRepo.Search(filter)
	if err != nil {
		return nil, err
	}
	return toCautelaList(list), nil
}

// audit grava auditoria pós-commit; falha aqui não desfaz a operação.
func (uc *CautelaUseCase) audit(armorerName, action, details string) {
	_ = uc.logRepo.Create(&entity.SystemLog{
		ID:          uuid.New().String(),
		ArmorerName: armorerName,
		Action:      action,
		Details:     details,
		Timestamp:   time.Now(),
	})
}

func toCautelaResponse(c *entity.Cautela) *dto.CautelaResponse {
	items := make([]dto.CautelaItemResponse, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, dto.CautelaItemResponse{
			MaterialID:   it.MaterialID,
			Category:     it.Category,
			SerialNumber: it.SerialNumber,
			Quantity:     it.Quantity,
		})
	}
	return &dto.CautelaResponse{
		ID:            c.ID,
		PersonnelID:   c.PersonnelID,
		PersonnelName: c.PersonnelName,
		ArmorerID:     c.ArmorerID,
		ArmorerName:   c.ArmorerName,
		Items:         items,
		IssuedAt:      c.IssuedAt,
		ReturnedAt:    c.ReturnedAt,
		ArmorerInID:   c.ArmorerInID,
		ArmorerInName: c.ArmorerInName,
		Status:        c.Status,
		Area:          c.Area,
		NotesOut:      c.NotesOut,
		NotesIn:       c.NotesIn,
		SignatureOut:  c.SignatureOut,
		SignatureIn:   c.SignatureIn,
	}
}

func toCautelaList(list []*entity.Cautela) *dto.CautelaListResponse {
	out := &dto.CautelaListResponse{Items: make([]dto.CautelaResponse, 0, len(list))}
	for _, c := range list {
		out.Items = append(out.Items, *toCautelaResponse(c))
	}
	out.Total = len(out.Items)
	return out
}
