package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/handlers"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

const identityKey = "identity"

var errMissingToken = serviceerrors.NewUnauthorizedError("Access token required")

type TokenVerifier interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error)
}

// Authenticate rejects the request unless it carries a valid bearer token.
// A missing token is a 401; a token that does not verify is whatever the
// verifier returned, normally a 403.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			handlers.HandleError(c, errMissingToken)
			return
		}

		identity, err := verifier.Authenticate(c.Request.Context(), rawToken)
		if err != nil {
			handlers.HandleError(c, err)
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// IdentityFrom returns the identity stored by Authenticate.
func IdentityFrom(c *gin.Context) (*domain.Identity, bool) {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := value.(*domain.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
