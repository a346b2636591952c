package usecase

import (
	"time"

	"github.com/sentinela-pm/sentinela-api/internal/application/dto"
	"github.com/sentinela-pm/sentinela-api/internal/domain/repository"
)

// LogUseCase consulta do registro de auditoria.
type LogUseCase struct {
	repo repository.SystemLogRepository
}

// NewLogUseCase constrói o caso de uso.
func NewLogUseCase(repo repository.SystemLogRepository) *LogUseCase {
	return &LogUseCase{repo: repo}
}

// List devolve uma página do registro, mais recente primeiro.
func (uc *LogUseCase) List(page dto.PageRequest) (*dto.SystemLogListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.SystemLogListResponse{Items: make([]dto.SystemLogResponse, 0, len(list))}
	for _, l := range list {
		out.Items = append(out.Items, dto.SystemLogResponse{
			ID:          l.ID,
			ArmorerName: l.ArmorerName,
			Action:      l.Action,
			Details:     l.Details,
			Timestamp:   l.Timestamp.Format(time.RFC3339),
		})
	}
	out.Total = len(out.Items)
	return out, nil
}
