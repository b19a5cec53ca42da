package domain

import "time"

// UserView es la representación externa de una cuenta.
type UserView struct {
	Name      string    `json:"nome"`
	Email     string    `json:"email"`
	Cpf       string    `json:"cpf"`
	CellPhone string    `json:"telefone"`
	BirthDate BirthDate `json:"data-nascimento"`
	Age       int       `json:"age"`
}

// NewUserView arma la vista externa derivando la edad a la fecha dada.
func NewUserView(u User, now time.Time) UserView {
	return UserView{
		Name:      u.Name,
		Email:     u.Email,
		Cpf:       u.Cpf,
		CellPhone: u.CellPhone,
		BirthDate: NewBirthDate(u.BirthDate),
		Age:       Age(u.BirthDate, now),
	}
}

// UserPage es una página de vistas con metadatos de paginación.
type UserPage struct {
	Content       []UserView `json:"content"`
	Number        int        `json:"number"`
	Size          int        `json:"size"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
}
