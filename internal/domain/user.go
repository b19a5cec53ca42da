package domain

import "time"

// Role define el papel de un usuario dentro del sistema.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User representa la cuenta persistida en la tabla users.
type User struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Cpf          string    `json:"cpf"`
	CellPhone    string    `json:"cell_phone"`
	BirthDate    time.Time `json:"birth_date"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
