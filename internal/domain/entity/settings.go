package entity

import "time"

// Frequências de backup automático.
const (
	BackupNever   = "NEVER"
	BackupDaily   = "DAILY"
	BackupWeekly  = "WEEKLY"
	BackupMonthly = "MONTHLY"
)

// GoogleDriveConfig credenciais para o colaborador externo de backup em
// nuvem. O serviço apenas armazena; o envio é responsabilidade do cliente.
type GoogleDriveConfig struct {
	ClientID string `json:"client_id"`
	APIKey   string `json:"api_key"`
}

// BackupConfig preferências de backup automático.
type BackupConfig struct {
	Enabled        bool       `json:"enabled"`
	Frequency      string     `json:"frequency"` // NEVER, DAILY, WEEKLY, MONTHLY
	LastBackupDate *time.Time `json:"last_backup_date,omitempty"`
}

// AppSettings configurações da aplicação (linha única no banco).
type AppSettings struct {
	InstitutionName string            `json:"institution_name"`
	InstitutionLogo string            `json:"institution_logo,omitempty"` // imagem normalizada, data-URL
	Theme           string            `json:"theme"`                      // light, dark
	GoogleDrive     GoogleDriveConfig `json:"google_drive"`
	Backup          BackupConfig      `json:"backup"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// DefaultSettings devolve os valores iniciais da instalação.
func DefaultSettings(institution string) AppSettings {
	if institution == "" {
		institution = "Polícia Militar"
	}
	return AppSettings{
		InstitutionName: institution,
		Theme:           "light",
		Backup:          BackupConfig{Frequency: BackupNever},
	}
}
