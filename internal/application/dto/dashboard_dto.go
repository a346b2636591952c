package dto

// DashboardResponse contadores do painel inicial.
type DashboardResponse struct {
	TotalMaterials   int            `json:"total_materials"`
	ByStatus         map[string]int `json:"by_status"`
	OpenCautelas     int            `json:"open_cautelas"`
	ActivePersonnel  int            `json:"active_personnel"`
	InMaintenance    int            `json:"in_maintenance"`
	ExpiringVests    int            `json:"expiring_vests"`
	InventorySummary string         `json:"inventory_summary"`
}

// SystemLogResponse entrada do registro de auditoria.
type SystemLogResponse struct {
	ID          string `json:"id"`
	ArmorerName string `json:"armorer_name"`
	Action      string `json:"action"`
	Details     string `json:"details"`
	Timestamp   string `json:"timestamp"`
}

// SystemLogListResponse página do registro de auditoria.
type SystemLogListResponse struct {
	Items []SystemLogResponse `json:"items"`
	Total int                 `json:"total"`
}
