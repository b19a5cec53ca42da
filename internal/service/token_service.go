package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"nachapa-api/internal/domain"
)

// Prefijo esperado en el header Authorization.
const BearerPrefix = "Bearer "

// Longitud mínima del secreto de firma, en bytes.
const minSigningKeyLength = 32

var (
	ErrTokenInvalid   = errors.New("token invalid")
	ErrTokenExpired   = errors.New("token expired")
	ErrSigningKeyWeak = errors.New("jwt signing key missing or shorter than 32 bytes")
)

// TokenClaims es el payload firmado: subject (email), role, iat y exp.
type TokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService emite y valida tokens JWT firmados con HMAC-SHA256.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewTokenService valida el secreto al arranque: menos de 32 bytes es un
// error fatal de configuración, no una falla por request.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < minSigningKeyLength {
		return nil, ErrSigningKeyWeak
	}
	// Tolerancia de 5s para evitar fluctuación de reloj entre ambientes.
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(5*time.Second),
	)
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		parser: parser,
	}, nil
}

// Generate emite un token compacto con subject=email y el role dado.
func (s *TokenService) Generate(email string, role domain.Role) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseClaims verifica firma y estructura; acepta el token con o sin el
// prefijo "Bearer ". Expiración y cualquier otra falla se reportan con
// errores distintos para quien quiera tratarlas por separado.
func (s *TokenService) ParseClaims(tokenOrBearer string) (TokenClaims, error) {
	var claims TokenClaims
	_, err := s.parser.ParseWithClaims(stripBearer(tokenOrBearer), &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return TokenClaims{}, ErrTokenExpired
		}
		return TokenClaims{}, ErrTokenInvalid
	}
	return claims, nil
}

// IsExpired devuelve true si exp <= ahora. Nunca propaga errores: un
// token que no parsea cuenta como expirado para este predicado.
func (s *TokenService) IsExpired(tokenOrBearer string) bool {
	claims, err := s.ParseClaims(tokenOrBearer)
	if err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}
	return !claims.ExpiresAt.After(time.Now())
}

// IsValid devuelve true sólo si las claims parsean, el subject coincide
// y el token no expiró. Cualquier error colapsa a false.
func (s *TokenService) IsValid(tokenOrBearer, expectedEmail string) bool {
	claims, err := s.ParseClaims(tokenOrBearer)
	if err != nil {
		return false
	}
	return claims.Subject == expectedEmail && !s.IsExpired(tokenOrBearer)
}

// stripBearer remueve el prefijo "Bearer " si está presente.
func stripBearer(tokenOrBearer string) string {
	return strings.TrimPrefix(tokenOrBearer, BearerPrefix)
}
