package repository

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/rafaelleal24/warehouse/internal/adapters/mongo/document"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	errCodeNamespaceExists          = 48
	errCodeDocumentValidationFailed = 121
)

type BaseRepository[T document.Document] struct {
	collection *mongo.Collection
}

func NewBaseRepository[T document.Document](db *mongo.Database, collectionName string) *BaseRepository[T] {
	return &BaseRepository[T]{
		collection: db.Collection(collectionName),
	}
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, parseError(err)
	}

	return r.FindOne(ctx, bson.M{"_id": objectID})
}

func (r *BaseRepository[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, parseError(err)
	}
	defer cursor.Close(ctx)

	entities := []T{}
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, parseError(err)
	}

	return entities, nil
}

func (r *BaseRepository[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	var entity T
	err := r.collection.FindOne(ctx, filter).Decode(&entity)
	if err != nil {
		return nil, parseError(err)
	}

	return &entity, nil
}

func (r *BaseRepository[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, parseError(err)
	}
	return count, nil
}

// Create inserts entity and returns the hex id the store assigned to it.
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) (string, error) {
	result, err := r.collection.InsertOne(ctx, entity)
	if err != nil {
		return "", parseError(err)
	}

	objectID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", errors.New("inserted id is not an ObjectID")
	}
	return objectID.Hex(), nil
}

// UpdateByID applies $set and returns the document as it is after the update.
func (r *BaseRepository[T]) UpdateByID(ctx context.Context, id string, set bson.M) (*T, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, parseError(err)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entity T
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&entity)
	if err != nil {
		return nil, parseError(err)
	}

	return &entity, nil
}

func (r *BaseRepository[T]) DeleteByID(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parseError(err)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return parseError(err)
	}

	if result.DeletedCount == 0 {
		return serviceerrors.NewNotFoundError("entity not found")
	}

	return nil
}

// DeleteByIDs removes every document whose id is listed and reports how many
// were removed. Ids that match nothing are not an error.
func (r *BaseRepository[T]) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return 0, parseError(err)
		}
		objectIDs = append(objectIDs, objectID)
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return 0, parseError(err)
	}

	return result.DeletedCount, nil
}

func parseError(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return serviceerrors.NewNotFoundError("entity not found")
	}
	if mongo.IsDuplicateKeyError(err) {
		return serviceerrors.NewConflictError("duplicate key error")
	}
	if isInvalidObjectIDError(err) {
		return serviceerrors.NewInvalidRequestError("invalid ID format")
	}
	if hasErrorCode(err, errCodeDocumentValidationFailed) {
		return serviceerrors.NewInvalidRequestError("Document failed validation")
	}
	return err
}

func hasErrorCode(err error, code int) bool {
	var serverErr mongo.ServerError
	return errors.As(err, &serverErr) && serverErr.HasErrorCode(code)
}

func isInvalidObjectIDError(err error) bool {
	if err == nil {
		return false
	}
	var invalidByte hex.InvalidByteError
	return errors.Is(err, primitive.ErrInvalidHex) ||
		errors.As(err, &invalidByte) ||
		strings.Contains(err.Error(), "not a valid ObjectID")
}
