package dto

import "time"

// CautelaItemRequest linha de material na saída.
type CautelaItemRequest struct {
	MaterialID string `json:"material_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"min=0"`
}

// IssueCautelaRequest entrada para registrar a saída de material.
type IssueCautelaRequest struct {
	PersonnelID string               `json:"personnel_id" validate:"required"`
	Items       []CautelaItemRequest `json:"items" validate:"required,min=1"`
	Area        string               `json:"area"`
	Notes       string               `json:"notes"`
	Signature   string               `json:"signature" validate:"required"`
}

// CloseCautelaRequest entrada para registrar a devolução.
type CloseCautelaRequest struct {
	Signature string `json:"signature"`
	Notes     string `json:"notes"`
}

// CautelaItemResponse linha de material na cautela.
type CautelaItemResponse struct {
	MaterialID   string `json:"material_id"`
	Category     string `json:"category"`
	SerialNumber string `json:"serial_number"`
	Quantity     int    `json:"quantity"`
}

// CautelaResponse saída de uma cautela.
type CautelaResponse struct {
	ID            string                `json:"id"`
	PersonnelID   string                `json:"personnel_id"`
	PersonnelName string                `json:"personnel_name"`
	ArmorerID     string                `json:"armorer_id"`
	ArmorerName   string                `json:"armorer_name"`
	Items         []CautelaItemResponse `json:"items"`
	IssuedAt      time.Time             `json:"issued_at"`
	ReturnedAt    *time.Time            `json:"returned_at,omitempty"`
	ArmorerInID   string                `json:"armorer_in_id,omitempty"`
	ArmorerInName string                `json:"armorer_in_name,omitempty"`
	Status        string                `json:"status"`
	Area          string                `json:"area"`
	NotesOut      string                `json:"notes_out,omitempty"`
	NotesIn       string                `json:"notes_in,omitempty"`
	SignatureOut  string                `json:"signature_out,omitempty"`
	SignatureIn   string                `json:"signature_in,omitempty"`
}

// CautelaListResponse histórico de cautelas (mais recente primeiro).
type CautelaListResponse struct {
	Items []CautelaResponse `json:"items"`
	Total int               `json:"total"`
}

// CautelaSearchRequest filtros de busca no histórico.
type CautelaSearchRequest struct {
	PersonnelID string `query:"personnel_id"`
	MaterialID  string `query:"material_id"`
	Status      string `query:"status"`
	Area        string `query:"area"`
	From        string `query:"from"` // AAAA-MM-DD
	To          string `query:"to"`
	PageRequest
}
