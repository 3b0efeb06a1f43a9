package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/warehouse/internal/core/logger"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

type ErrorResponse struct {
	Message string `json:"message" example:"Product not found"`
}

// HandleError writes err as a JSON error body. Service errors carry their own
// status and message; anything else is a 500.
func HandleError(c *gin.Context, err error) {
	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		c.AbortWithStatusJSON(mapKindToHTTP(svcErr.Kind), ErrorResponse{Message: svcErr.Message})
		return
	}

	logger.Error(c.Request.Context(), "http: internal error", err, map[string]any{
		"http.method": c.Request.Method,
		"http.path":   c.Request.URL.Path,
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
}

// Recover answers a panicking request with a generic 500.
func Recover(c *gin.Context, recovered any) {
	logger.Error(c.Request.Context(), "http: panic recovered", fmt.Errorf("%v", recovered), map[string]any{
		"http.method": c.Request.Method,
		"http.path":   c.Request.URL.Path,
	})
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: "Route not found"})
}

func mapKindToHTTP(kind serviceerrors.ErrorKind) int {
	switch kind {
	case serviceerrors.KindNotFound:
		return http.StatusNotFound
	case serviceerrors.KindConflict:
		return http.StatusConflict
	case serviceerrors.KindUnprocessableEntity:
		return http.StatusUnprocessableEntity
	case serviceerrors.KindInvalidRequest:
		return http.StatusBadRequest
	case serviceerrors.KindUnauthorized:
		return http.StatusUnauthorized
	case serviceerrors.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
