package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nachapa-api/internal/errcode"
)

func respondError(c *gin.Context, status int, code string) {
	c.JSON(status, errcode.NewResponse(code))
}

func respondFieldError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, errcode.NewFieldResponse(message))
}
