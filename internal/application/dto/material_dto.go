package dto

import "time"

// CreateMaterialRequest entrada para cadastrar material no acervo.
type CreateMaterialRequest struct {
	Category     string     `json:"category" validate:"required"`
	Type         string     `json:"type" validate:"required"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	Manufacturer string     `json:"manufacturer"`
	Caliber      string     `json:"caliber"`
	Condition    string     `json:"condition"`
	Location     string     `json:"location"`
	Quantity     int        `json:"quantity" validate:"min=0"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// UpdateMaterialRequest entrada para atualizar material (campos opcionais).
type UpdateMaterialRequest struct {
	Type         *string    `json:"type"`
	Model        *string    `json:"model"`
	SerialNumber *string    `json:"serial_number"`
	Manufacturer *string    `json:"manufacturer"`
	Caliber      *string    `json:"caliber"`
	Condition    *string    `json:"condition"`
	Status       *string    `json:"status"`
	Location     *string    `json:"location"`
	Quantity     *int       `json:"quantity"`
	ExpiryDate   *time.Time `json:"expiry_date"`
}

// MaterialResponse saída de um material.
type MaterialResponse struct {
	ID           string     `json:"id"`
	Category     string     `json:"category"`
	Type         string     `json:"type"`
	Model        string     `json:"model"`
	SerialNumber string     `json:"serial_number"`
	Manufacturer string     `json:"manufacturer"`
	Caliber      string     `json:"caliber"`
	Condition    string     `json:"condition"`
	Status       string     `json:"status"`
	PersonnelID  string     `json:"personnel_id,omitempty"`
	Location     string     `json:"location,omitempty"`
	Quantity     int        `json:"quantity"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// MaterialListResponse lista do acervo.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Total int                `json:"total"`
}
