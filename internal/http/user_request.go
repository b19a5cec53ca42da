package http

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"nachapa-api/internal/domain"
	"nachapa-api/internal/service"
)

// userRequest es el borrador de cuenta que llega en registro y update.
type userRequest struct {
	Name      string           `json:"nome"`
	Email     string           `json:"email"`
	Password  string           `json:"senha"`
	Cpf       string           `json:"cpf"`
	CellPhone string           `json:"telefone"`
	BirthDate domain.BirthDate `json:"data-nascimento"`
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	cpfPattern   = regexp.MustCompile(`^[0-9]{11}$`)
	// DDD de dos dígitos + prefijo móvil 9 + 8 dígitos.
	phonePattern = regexp.MustCompile(`^[1-9]{2}9[0-9]{8}$`)
)

// validate aplica las reglas de campo y devuelve el primer mensaje que
// falle. En update la contraseña es opcional: vacía significa "no cambiar".
func (r userRequest) validate(requirePassword bool) (string, bool) {
	name := strings.TrimSpace(r.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return "O nome deve ter entre 2 e 50 caracteres.", false
	}

	if strings.TrimSpace(r.Email) == "" {
		return "O e-mail é obrigatório.", false
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		return "O e-mail deve ser válido.", false
	}

	if requirePassword && strings.TrimSpace(r.Password) == "" {
		return "A senha é obrigatória.", false
	}
	if strings.TrimSpace(r.Password) != "" && utf8.RuneCountInString(r.Password) < 6 {
		return "A senha deve ter pelo menos 6 caracteres.", false
	}

	if !cpfPattern.MatchString(r.Cpf) {
		return "CPF inválido. Use o formato 00000000000.", false
	}

	if !phonePattern.MatchString(r.CellPhone) {
		return "O telefone deve estar no formato DDD + número (ex: 31912345678)", false
	}

	if r.BirthDate.IsZero() {
		return "A data de nascimento é obrigatória.", false
	}
	if !r.BirthDate.Before(time.Now()) {
		return "A data de nascimento deve ser uma data no passado.", false
	}

	return "", true
}

func (r userRequest) toInput() service.UserInput {
	return service.UserInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Cpf:       r.Cpf,
		CellPhone: r.CellPhone,
		BirthDate: r.BirthDate.Time,
	}
}
