package dto

import (
	"time"

	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// SaveDailyPartRequest entrada para criar ou atualizar uma edição do Livro
// de Alterações. O conteúdo completo das cinco partes viaja junto.
type SaveDailyPartRequest struct {
	Content entity.DailyPartContent `json:"content"`
}

// FinalizeDailyPartRequest entrada para finalizar a parte diária.
// A assinatura do armeiro é obrigatória e a transição é terminal.
type FinalizeDailyPartRequest struct {
	Signature string `json:"signature" validate:"required"`
}

// DailyPartResponse saída de uma edição do livro.
type DailyPartResponse struct {
	ID         string                  `json:"id"`
	AuthorID   string                  `json:"author_id"`
	AuthorName string                  `json:"author_name"`
	Status     string                  `json:"status"`
	Signature  string                  `json:"signature,omitempty"`
	Content    entity.DailyPartContent `json:"content"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// DailyPartListResponse lista de edições do livro.
type DailyPartListResponse struct {
	Items []DailyPartResponse `json:"items"`
	Total int                 `json:"total"`
}
