package domain

import "time"

type User struct {
	ID           ID
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(username, passwordHash string) *User {
	now := time.Now()
	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Identity is the principal carried by a verified access token.
type Identity struct {
	UserID    ID        `json:"user_id"`
	Username  string    `json:"username"`
	TokenID   string    `json:"token_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Token struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}
