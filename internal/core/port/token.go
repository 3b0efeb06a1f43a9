package port

import "github.com/rafaelleal24/warehouse/internal/core/domain"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// TokenPort signs and parses access tokens. Parse fails for any token that was
// not issued by the same port or has expired.
type TokenPort interface {
	Issue(user *domain.User) (*domain.Token, error)
	Parse(rawToken string) (*domain.Identity, error)
}
