package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"not found", serviceerrors.NewNotFoundError("Product not found"), http.StatusNotFound, "Product not found"},
		{"conflict", serviceerrors.NewConflictError("Username already taken"), http.StatusConflict, "Username already taken"},
		{"unprocessable", serviceerrors.NewUnprocessableEntityError("nope"), http.StatusUnprocessableEntity, "nope"},
		{"invalid request", serviceerrors.NewInvalidRequestError("Invalid product ID"), http.StatusBadRequest, "Invalid product ID"},
		{"unauthorized", serviceerrors.NewUnauthorizedError("Access token required"), http.StatusUnauthorized, "Access token required"},
		{"forbidden", serviceerrors.NewForbiddenError("Invalid or expired token"), http.StatusForbidden, "Invalid or expired token"},
		{"wrapped service error", errors.Join(errors.New("ctx"), serviceerrors.NewNotFoundError("gone")), http.StatusNotFound, "gone"},
		{"internal", errors.New("connection refused"), http.StatusInternalServerError, "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/products", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body.Message)
		})
	}
}

func TestRecover(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(gin.CustomRecovery(Recover))
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, w.Body.String())
}
