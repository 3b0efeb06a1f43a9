package port

import (
	"context"

	"github.com/rafaelleal24/warehouse/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type ProductPort interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id domain.ID) (*domain.Product, error)
	Find(ctx context.Context, filter domain.ProductFilter, offset, limit int64) ([]*domain.Product, error)
	Count(ctx context.Context, filter domain.ProductFilter) (int64, error)
	Update(ctx context.Context, id domain.ID, update domain.ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, id domain.ID) error
	DeleteMany(ctx context.Context, ids []domain.ID) (int64, error)
}
