package dto

import "time"

// CreatePersonnelRequest entrada para cadastrar policial no efetivo.
type CreatePersonnelRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	WarName   string `json:"war_name"`
	Rank      string `json:"rank" validate:"required"`
	Numeral   string `json:"numeral"`
	Matricula string `json:"matricula" validate:"required"`
	Area      string `json:"area"`
}

// UpdatePersonnelRequest entrada para atualizar policial (campos opcionais).
type UpdatePersonnelRequest struct {
	Name      *string `json:"name"`
	WarName   *string `json:"war_name"`
	Rank      *string `json:"rank"`
	Numeral   *string `json:"numeral"`
	Matricula *string `json:"matricula"`
	Area      *string `json:"area"`
	Active    *bool   `json:"active"`
}

// PersonnelResponse saída de um policial.
type PersonnelResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	WarName     string    `json:"war_name"`
	Rank        string    `json:"rank"`
	Numeral     string    `json:"numeral"`
	Matricula   string    `json:"matricula"`
	Area        string    `json:"area"`
	Active      bool      `json:"active"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PersonnelListResponse lista do efetivo.
type PersonnelListResponse struct {
	Items []PersonnelResponse `json:"items"`
	Total int                 `json:"total"`
}
