package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"nachapa-api/internal/domain"
	"nachapa-api/internal/email"
	"nachapa-api/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrCpfAlreadyRegistered   = errors.New("cpf already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrDeactivateUser         = errors.New("could not deactivate user")
	ErrCpfCannotBeChanged     = errors.New("cpf cannot be changed")
)

// UserService coordina reglas de negocio del ciclo de vida de cuentas.
type UserService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	emailSender email.Sender
}

func NewUserService(logger *zap.Logger, users repository.UserRepository, emailSender email.Sender) *UserService {
	return &UserService{
		logger:      logger,
		users:       users,
		emailSender: emailSender,
	}
}

// UserInput es el borrador de cuenta que llega de registro y update.
type UserInput struct {
	Name      string
	Email     string
	Password  string
	Cpf       string
	CellPhone string
	BirthDate time.Time
}

// Register crea la cuenta con role USER y activa. Los chequeos previos de
// unicidad dan errores tempranos; el constraint de la base es la guarda
// definitiva y se traduce a los mismos errores.
func (s *UserService) Register(ctx context.Context, input UserInput) error {
	if s.users == nil {
		return errors.New("user service not configured")
	}

	emailAddr := normalizeEmail(input.Email)

	if _, err := s.users.GetByEmail(ctx, emailAddr); err == nil {
		return ErrEmailAlreadyRegistered
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if _, err := s.users.GetByCpf(ctx, input.Cpf); err == nil {
		return ErrCpfAlreadyRegistered
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           uuid.NewString(),
		Role:         domain.RoleUser,
		Name:         strings.TrimSpace(input.Name),
		Email:        emailAddr,
		PasswordHash: string(hashBytes),
		Cpf:          input.Cpf,
		CellPhone:    input.CellPhone,
		BirthDate:    input.BirthDate,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return ErrEmailAlreadyRegistered
		case errors.Is(err, repository.ErrDuplicateCpf):
			return ErrCpfAlreadyRegistered
		}
		return err
	}

	if s.emailSender != nil {
		if err := s.emailSender.SendWelcome(ctx, user.Email, user.Name); err != nil && s.logger != nil {
			s.logger.Warn("send welcome email failed", zap.Error(err), zap.String("email", user.Email))
		}
	}

	return nil
}

// Deactivate marca la cuenta como inactiva (soft delete). Una cuenta ya
// inactiva o inexistente devuelve ErrUserNotFound; una falla de
// persistencia durante el guardado se reporta aparte.
func (s *UserService) Deactivate(ctx context.Context, id string) error {
	if s.users == nil {
		return errors.New("user service not configured")
	}

	user, err := s.users.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return err
	}

	user.UpdatedAt = time.Now().UTC()
	if err := s.users.Deactivate(ctx, user); err != nil {
		if s.logger != nil {
			s.logger.Error("deactivate user failed", zap.Error(err), zap.String("id", id))
		}
		return ErrDeactivateUser
	}

	return nil
}

// Update reemplaza los campos mutables de la cuenta. El CPF viaja en el
// borrador sólo como valor de confirmación: si difiere del guardado la
// operación falla y el registro queda intacto. La contraseña se rehashea
// únicamente cuando llega un valor no vacío.
func (s *UserService) Update(ctx context.Context, id string, input UserInput) (domain.UserView, error) {
	if s.users == nil {
		return domain.UserView{}, errors.New("user service not configured")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserView{}, ErrUserNotFound
		}
		return domain.UserView{}, err
	}

	emailAddr := normalizeEmail(input.Email)
	taken, err := s.users.ExistsByEmailExcludingID(ctx, emailAddr, id)
	if err != nil {
		return domain.UserView{}, err
	}
	if taken {
		return domain.UserView{}, ErrEmailAlreadyRegistered
	}

	if input.Cpf != user.Cpf {
		return domain.UserView{}, ErrCpfCannotBeChanged
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Email = emailAddr
	if strings.TrimSpace(input.Password) != "" {
		hashBytes, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return domain.UserView{}, err
		}
		user.PasswordHash = string(hashBytes)
	}
	user.CellPhone = input.CellPhone
	user.BirthDate = input.BirthDate
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return domain.UserView{}, ErrEmailAlreadyRegistered
		case errors.Is(err, pgx.ErrNoRows):
			return domain.UserView{}, ErrUserNotFound
		}
		return domain.UserView{}, err
	}

	return domain.NewUserView(user, time.Now()), nil
}

// List devuelve una página de vistas con el total de registros. El sort
// llega como "campo,dirección"; la dirección sólo es descendente cuando
// vale exactamente "desc" sin distinguir mayúsculas.
func (s *UserService) List(ctx context.Context, page, size int, sort string) (domain.UserPage, error) {
	if s.users == nil {
		return domain.UserPage{}, errors.New("user service not configured")
	}

	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	column, descending := parseSort(sort)
	users, total, err := s.users.List(ctx, page, size, column, descending)
	if err != nil {
		return domain.UserPage{}, err
	}

	now := time.Now()
	views := make([]domain.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, domain.NewUserView(u, now))
	}

	totalPages := int((total + int64(size) - 1) / int64(size))

	return domain.UserPage{
		Content:       views,
		Number:        page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// Lista blanca de campos ordenables hacia columnas reales.
var sortColumns = map[string]string{
	"name":      "name",
	"nome":      "name",
	"email":     "email",
	"cpf":       "cpf",
	"birthDate": "birth_date",
	"createdAt": "created_at",
}

func parseSort(sort string) (column string, descending bool) {
	parts := strings.Split(sort, ",")
	field := strings.TrimSpace(parts[0])
	column, ok := sortColumns[field]
	if !ok {
		column = "name"
	}
	descending = len(parts) > 1 && strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
	return column, descending
}
