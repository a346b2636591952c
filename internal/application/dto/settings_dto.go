package dto

import "github.com/sentinela-pm/sentinela-api/internal/domain/entity"

// UpdateSettingsRequest entrada para atualizar as configurações (campos
// opcionais; só o que vier preenchido é alterado).
type UpdateSettingsRequest struct {
	InstitutionName *string                   `json:"institution_name"`
	InstitutionLogo *string                   `json:"institution_logo"` // data-URL; será normalizada
	Theme           *string                   `json:"theme"`
	GoogleDrive     *entity.GoogleDriveConfig `json:"google_drive"`
	Backup          *entity.BackupConfig      `json:"backup"`
}

// SettingsResponse configurações vigentes.
type SettingsResponse struct {
	Settings entity.AppSettings `json:"settings"`
}
