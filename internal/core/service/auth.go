package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/dto"
	"github.com/rafaelleal24/warehouse/internal/core/logger"
	"github.com/rafaelleal24/warehouse/internal/core/port"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
	"golang.org/x/crypto/bcrypt"
)

var (
	errInvalidCredentials = serviceerrors.NewUnauthorizedError("Invalid username or password")
	errInvalidToken       = serviceerrors.NewForbiddenError("Invalid or expired token")
)

type AuthService struct {
	userRepository port.UserPort
	tokens         port.TokenPort
	revocations    port.CachePort[domain.Identity]
	bcryptCost     int
}

func NewAuthService(
	userRepository port.UserPort,
	tokens port.TokenPort,
	revocations port.CachePort[domain.Identity],
	bcryptCost int,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		userRepository: userRepository,
		tokens:         tokens,
		revocations:    revocations,
		bcryptCost:     bcryptCost,
	}
}

func (s *AuthService) Register(ctx context.Context, request *dto.RegisterRequest) (*domain.User, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, serviceerrors.NewInvalidRequestError("password must be at most 72 bytes long")
		}
		return nil, err
	}

	user := domain.NewUser(strings.ToLower(request.Username), string(hash))
	if err := s.userRepository.Create(ctx, user); err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			return nil, serviceerrors.NewConflictError("Username already taken")
		}
		logger.Error(ctx, "auth: register failed", err, map[string]any{"username": user.Username})
		return nil, err
	}

	logger.Info(ctx, "User registered", map[string]any{"user_id": user.ID, "username": user.Username})
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, request *dto.LoginRequest) (*domain.Token, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepository.GetByUsername(ctx, strings.ToLower(request.Username))
	if err != nil {
		if serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		logger.Warn(ctx, "auth: password mismatch", map[string]any{"username": user.Username})
		return nil, errInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		logger.Error(ctx, "auth: token issue failed", err, map[string]any{"user_id": user.ID})
		return nil, err
	}
	return token, nil
}

// Logout revokes the token behind identity until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	ttl := time.Until(identity.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	if err := s.revocations.Set(ctx, identity.TokenID, identity, ttl); err != nil {
		logger.Error(ctx, "auth: revoke failed", err, map[string]any{"token_id": identity.TokenID})
		return err
	}

	logger.Info(ctx, "Token revoked", map[string]any{"user_id": identity.UserID, "token_id": identity.TokenID})
	return nil
}

func (s *AuthService) Authenticate(ctx context.Context, rawToken string) (*domain.Identity, error) {
	identity, err := s.tokens.Parse(rawToken)
	if err != nil {
		logger.Debug(ctx, "auth: token rejected", map[string]any{"reason": err.Error()})
		return nil, errInvalidToken
	}

	revoked, err := s.revocations.Get(ctx, identity.TokenID)
	if err != nil {
		logger.Error(ctx, "auth: revocation lookup failed", err, map[string]any{"token_id": identity.TokenID})
		return nil, err
	}
	if revoked != nil {
		return nil, errInvalidToken
	}
	return identity, nil
}
