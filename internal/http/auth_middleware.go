package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"nachapa-api/internal/service"
)

const identityKey = "auth_identity"

const rolePrefix = "ROLE_"

// Identity es la identidad autenticada adjunta a un request.
type Identity struct {
	Subject   string
	Authority string
}

// AuthGate extrae y valida el bearer token de cada request y, si todo
// está en orden, adjunta la identidad al contexto. Nunca corta la
// cadena: sin credenciales o con token inválido el request sigue sin
// identidad y el rechazo queda a cargo de la política de cada ruta.
func AuthGate(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, service.BearerPrefix) {
			c.Next()
			return
		}

		claims, err := tokens.ParseClaims(header[len(service.BearerPrefix):])
		if err == nil && claims.Role != "" {
			// Primer escritor gana: una identidad ya presente no se pisa.
			if _, exists := c.Get(identityKey); !exists {
				c.Set(identityKey, Identity{
					Subject:   claims.Subject,
					Authority: rolePrefix + claims.Role,
				})
			}
		}

		c.Next()
	}
}

// RequireIdentity es la política de rutas protegidas: sin identidad en
// el contexto responde 401.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetIdentity(c); !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// GetIdentity obtiene la identidad autenticada desde el contexto.
func GetIdentity(c *gin.Context) (Identity, bool) {
	val, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}

// SetIdentity adjunta una identidad al contexto del request.
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(identityKey, identity)
}
