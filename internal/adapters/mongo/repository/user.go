package repository

import (
	"context"

	"github.com/rafaelleal24/warehouse/internal/adapters/mongo/document"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

type UserRepository struct {
	*BaseRepository[document.UserDocument]
}

func NewUserRepository(db *mongo.Database) port.UserPort {
	return &UserRepository{
		BaseRepository: NewBaseRepository[document.UserDocument](db, usersCollection),
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	id, err := r.BaseRepository.Create(ctx, document.ToUserDocument(user))
	if err != nil {
		return err
	}

	user.ID = domain.ID(id)
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	doc, err := r.FindOne(ctx, bson.M{"username": username})
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}
