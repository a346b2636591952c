package entity

import "time"

// SystemLog é uma entrada do registro de auditoria, gravada pelos casos de
// uso após cada mutação bem-sucedida. Histórico append-only.
type SystemLog struct {
	ID          string
	ArmorerName string
	Action      string
	Details     string
	Timestamp   time.Time
}
