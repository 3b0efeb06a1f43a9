package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rafaelleal24/warehouse/internal/adapters/config"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/port"
)

const tokenType = "Bearer"

type claims struct {
	gojwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenManager issues and parses HS256 access tokens. Every token carries a
// random jti so it can be revoked on its own.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
	parser *gojwt.Parser
}

func NewTokenManager(cfg config.AuthConfig) (port.TokenPort, error) {
	if cfg.JWTSecret == "" {
		return nil, config.ErrMissingJWTSecret
	}
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    cfg.TokenTTL,
		now:    time.Now,
		parser: gojwt.NewParser(
			gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
			gojwt.WithIssuer(cfg.JWTIssuer),
			gojwt.WithExpirationRequired(),
		),
	}, nil
}

func (m *TokenManager) Issue(user *domain.User) (*domain.Token, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   string(user.ID),
			Issuer:    m.issuer,
			IssuedAt:  gojwt.NewNumericDate(issuedAt),
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
		},
		Username: user.Username,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.Token{
		AccessToken: signed,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

func (m *TokenManager) Parse(rawToken string) (*domain.Identity, error) {
	parsed := &claims{}
	_, err := m.parser.ParseWithClaims(rawToken, parsed, func(*gojwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if parsed.ID == "" || parsed.Subject == "" {
		return nil, errors.New("parse token: missing jti or sub")
	}

	return &domain.Identity{
		UserID:    domain.ID(parsed.Subject),
		Username:  parsed.Username,
		TokenID:   parsed.ID,
		ExpiresAt: parsed.ExpiresAt.Time,
	}, nil
}
