package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"nachapa-api/internal/errcode"
	"nachapa-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

// List maneja GET /api/users con paginación y ordenamiento.
func (h *UserHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		respondError(c, http.StatusBadRequest, errcode.ValueNotValid)
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		respondError(c, http.StatusBadRequest, errcode.ValueNotValid)
		return
	}
	sort := c.DefaultQuery("sort", "name,asc")

	result, err := h.userServ.List(c.Request.Context(), page, size, sort)
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, errcode.Internal)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Update maneja PUT /api/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id := c.Param("id")
	// Un id que no parsea como UUID nunca corresponde a una cuenta.
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, errcode.UserNotFound)
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update request", zap.Error(err))
		respondError(c, http.StatusBadRequest, errcode.Deserialization)
		return
	}
	if msg, ok := req.validate(false); !ok {
		respondFieldError(c, msg)
		return
	}

	view, err := h.userServ.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusBadRequest, errcode.UserNotFound)
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			respondError(c, http.StatusBadRequest, errcode.EmailAlreadyRegistered)
		case errors.Is(err, service.ErrCpfCannotBeChanged):
			respondError(c, http.StatusNotFound, errcode.CpfCannotBeChanged)
		default:
			h.logger.Error("update user failed", zap.Error(err), zap.String("id", id))
			respondError(c, http.StatusInternalServerError, errcode.Internal)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// Deactivate maneja DELETE /api/users/:id (soft delete).
func (h *UserHandler) Deactivate(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, errcode.UserNotFound)
		return
	}

	if err := h.userServ.Deactivate(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			respondError(c, http.StatusBadRequest, errcode.UserNotFound)
		case errors.Is(err, service.ErrDeactivateUser):
			respondError(c, http.StatusNotFound, errcode.DeactivateUser)
		default:
			h.logger.Error("deactivate user failed", zap.Error(err), zap.String("id", id))
			respondError(c, http.StatusInternalServerError, errcode.Internal)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
