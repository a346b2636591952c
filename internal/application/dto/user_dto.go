package dto

import "time"

// LoginRequest credenciais de acesso. Na primeira execução (nenhum armeiro
// cadastrado) aceita-se a credencial de instalação.
type LoginRequest struct {
	Matricula string `json:"matricula" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginResponse token de sessão e dados do armeiro autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SetupRequired indica se o sistema ainda não tem armeiro cadastrado.
type SetupRequired struct {
	Required bool `json:"required"`
}

// CreateUserRequest entrada para cadastrar armeiro/administrador.
type CreateUserRequest struct {
	Name      string `json:"name" validate:"required"`
	WarName   string `json:"war_name"`
	Rank      string `json:"rank" validate:"required"`
	Numeral   string `json:"numeral"`
	Matricula string `json:"matricula" validate:"required"`
	Password  string `json:"password" validate:"required,min=4"`
	Role      string `json:"role"`
}

// UpdateUserRequest entrada para atualizar armeiro (campos opcionais).
type UpdateUserRequest struct {
	Name     *string `json:"name"`
	WarName  *string `json:"war_name"`
	Rank     *string `json:"rank"`
	Numeral  *string `json:"numeral"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// UserResponse saída de um armeiro (nunca expõe o hash de senha).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	WarName     string    `json:"war_name"`
	Rank        string    `json:"rank"`
	Numeral     string    `json:"numeral"`
	Matricula   string    `json:"matricula"`
	Role        string    `json:"role"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}
