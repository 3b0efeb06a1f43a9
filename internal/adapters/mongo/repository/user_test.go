package repository_test

import (
	"context"
	"testing"

	"github.com/rafaelleal24/warehouse/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
)

func TestUserRepository(t *testing.T) {
	db := testClient.Database("test_users")
	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("setup: ensure schema failed: %v", err)
	}
	repo := repository.NewUserRepository(db)
	ctx := context.Background()

	t.Run("create and look up by username", func(t *testing.T) {
		user := domain.NewUser("alice", "$2a$04$hash")
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if user.ID == "" {
			t.Fatal("expected user ID to be assigned")
		}

		found, err := repo.GetByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if found.ID != user.ID || found.PasswordHash != "$2a$04$hash" {
			t.Fatalf("unexpected user %+v", found)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		err := repo.Create(ctx, domain.NewUser("alice", "other"))
		if !serviceerrors.IsOfKind(err, serviceerrors.KindConflict) {
			t.Fatalf("expected KindConflict, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := repo.GetByUsername(ctx, "nobody")
		if !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
			t.Fatalf("expected KindNotFound, got %v", err)
		}
	})
}

func TestEnsureSchema_IsRepeatable(t *testing.T) {
	db := testClient.Database("test_schema_repeat")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := repository.EnsureSchema(ctx, db); err != nil {
			t.Fatalf("run %d: expected no error, got %v", i+1, err)
		}
	}
}
