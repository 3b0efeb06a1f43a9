package document

import (
	"time"

	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"passwordHash"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (doc UserDocument) GetID() primitive.ObjectID {
	return doc.ID
}

func (doc *UserDocument) ToDomain() *domain.User {
	return &domain.User{
		ID:           domain.ID(doc.ID.Hex()),
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func ToUserDocument(u *domain.User) *UserDocument {
	return &UserDocument{
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
