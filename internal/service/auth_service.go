package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"nachapa-api/internal/repository"
)

// ErrInvalidCredentials cubre email inexistente y contraseña incorrecta
// sin distinguirlos, para no permitir enumeración de cuentas.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService verifica credenciales y emite tokens de acceso.
type AuthService struct {
	logger  *zap.Logger
	users   repository.UserRepository
	tokens  *TokenService
	limiter LoginRateLimiter
}

func NewAuthService(logger *zap.Logger, users repository.UserRepository, tokens *TokenService, limiter LoginRateLimiter) *AuthService {
	return &AuthService{
		logger:  logger,
		users:   users,
		tokens:  tokens,
		limiter: limiter,
	}
}

// Authenticate valida el par (email, contraseña) contra el hash guardado
// y devuelve un token firmado con subject=email y el role de la cuenta.
func (s *AuthService) Authenticate(ctx context.Context, emailAddr, password string) (string, error) {
	if s.users == nil || s.tokens == nil {
		return "", errors.New("auth service not configured")
	}

	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		if s.logger != nil {
			s.logger.Warn("login rate limited", zap.String("email", emailAddr))
		}
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Generate(user.Email, user.Role)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
