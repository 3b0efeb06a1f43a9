package domain

import "testing"

func TestNewUser(t *testing.T) {
	u := NewUser("alice", "$2a$10$hash")

	if u.Username != "alice" {
		t.Fatalf("expected username 'alice', got %q", u.Username)
	}
	if u.PasswordHash != "$2a$10$hash" {
		t.Fatalf("expected password hash to be kept, got %q", u.PasswordHash)
	}
	if u.ID != "" {
		t.Fatalf("expected empty ID, got %q", u.ID)
	}
	if u.CreatedAt.IsZero() || !u.UpdatedAt.Equal(u.CreatedAt) {
		t.Fatalf("expected matching non-zero timestamps, got %v / %v", u.CreatedAt, u.UpdatedAt)
	}
}
