package repository

import (
	"github.com/sentinela-pm/sentinela-api/internal/domain/entity"
)

// SettingsRepository persiste a linha única de configurações da aplicação.
type SettingsRepository interface {
	Get() (*entity.AppSettings, error)
	Save(settings *entity.AppSettings) error
}
