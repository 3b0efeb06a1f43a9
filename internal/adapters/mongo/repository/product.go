package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/rafaelleal24/warehouse/internal/adapters/mongo/document"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
}

func NewProductRepository(db *mongo.Database) port.ProductPort {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, productsCollection),
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	id, err := r.BaseRepository.Create(ctx, document.ToProductDocument(product))
	if err != nil {
		return err
	}

	product.ID = domain.ID(id)
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, string(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *ProductRepository) Find(ctx context.Context, filter domain.ProductFilter, offset, limit int64) ([]*domain.Product, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(limit)

	docs, err := r.BaseRepository.Find(ctx, productFilterToBSON(filter), opts)
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i := range docs {
		products[i] = docs[i].ToDomain()
	}

	return products, nil
}

func (r *ProductRepository) Count(ctx context.Context, filter domain.ProductFilter) (int64, error) {
	return r.BaseRepository.Count(ctx, productFilterToBSON(filter))
}

func (r *ProductRepository) Update(ctx context.Context, id domain.ID, update domain.ProductUpdate) (*domain.Product, error) {
	doc, err := r.UpdateByID(ctx, string(id), productUpdateToBSON(update, time.Now()))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *ProductRepository) Delete(ctx context.Context, id domain.ID) error {
	return r.DeleteByID(ctx, string(id))
}

func (r *ProductRepository) DeleteMany(ctx context.Context, ids []domain.ID) (int64, error) {
	hexIDs := make([]string, len(ids))
	for i, id := range ids {
		hexIDs[i] = string(id)
	}
	return r.DeleteByIDs(ctx, hexIDs)
}

// productFilterToBSON emits one clause per supplied filter field. The name is
// matched literally, so regex metacharacters in it carry no meaning.
func productFilterToBSON(filter domain.ProductFilter) bson.M {
	query := bson.M{}

	if filter.NameContains != "" {
		query["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.NameContains), Options: "i"}
	}

	price := bson.M{}
	if filter.MinPrice != nil {
		price["$gte"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		price["$lte"] = *filter.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return query
}

func productUpdateToBSON(update domain.ProductUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Quantity != nil {
		set["quantity"] = *update.Quantity
	}
	if update.Price != nil {
		set["price"] = *update.Price
	}
	return set
}
