package entity

import "time"

// Roles válidos para User (armeiros administradores do sistema).
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
)

// User representa um armeiro com acesso ao sistema.
// A matrícula é o login; a senha é armazenada como hash bcrypt.
type User struct {
	ID           string
	Name         string
	WarName      string
	Rank         string
	Numeral      string
	Matricula    string
	PasswordHash string // bcrypt, nunca em claro após persistir
	Role         string // SUPER_ADMIN, ADMIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName compõe posto + numeral + nome de guerra (ou nome), mesmo
// formato usado nos snapshots de cautela para o armeiro recebedor.
func (u User) DisplayName() string {
	p := Personnel{Name: u.Name, WarName: u.WarName, Rank: u.Rank, Numeral: u.Numeral}
	return p.DisplayName()
}
