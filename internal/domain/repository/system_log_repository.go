package repository

import (
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// SystemLogRepository define o porto do registro de auditoria (append-only).
type SystemLogRepository interface {
	Create(log *entity.SystemLog) error
	List(limit, offset int) ([]*entity.SystemLog, error)
}
