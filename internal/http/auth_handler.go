package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nachapa-api/internal/errcode"
	"nachapa-api/internal/service"
)

// AuthHandler mantiene dependencias para registro y login.
type AuthHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
	authServ *service.AuthService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, userServ *service.UserService, authServ *service.AuthService) *AuthHandler {
	return &AuthHandler{
		logger:   logger,
		userServ: userServ,
		authServ: authServ,
	}
}

// Register maneja POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		respondError(c, http.StatusBadRequest, errcode.Deserialization)
		return
	}
	if msg, ok := req.validate(true); !ok {
		respondFieldError(c, msg)
		return
	}

	if err := h.userServ.Register(c.Request.Context(), req.toInput()); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			respondError(c, http.StatusBadRequest, errcode.EmailAlreadyRegistered)
		case errors.Is(err, service.ErrCpfAlreadyRegistered):
			respondError(c, http.StatusBadRequest, errcode.CpfAlreadyRegistered)
		default:
			h.logger.Error("register user failed", zap.Error(err))
			respondError(c, http.StatusInternalServerError, errcode.Internal)
		}
		return
	}

	c.Status(http.StatusCreated)
}

// Login maneja POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		respondError(c, http.StatusBadRequest, errcode.Deserialization)
		return
	}

	token, err := h.authServ.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, errcode.InvalidCredentials)
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, errcode.Internal)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "type": "Bearer"})
}
