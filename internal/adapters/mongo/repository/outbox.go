package repository

import (
	"context"
	"time"

	"github.com/rafaelleal24/warehouse/internal/adapters/mongo/document"
	"github.com/rafaelleal24/warehouse/internal/adapters/outbox"
	"github.com/rafaelleal24/warehouse/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const outboxCollection = "outbox"

type OutboxRepository struct {
	*BaseRepository[document.OutboxDocument]
}

func NewOutboxRepository(db *mongo.Database) outbox.Repository {
	return &OutboxRepository{
		BaseRepository: NewBaseRepository[document.OutboxDocument](db, outboxCollection),
	}
}

func (r *OutboxRepository) Insert(ctx context.Context, entry outbox.Entry) error {
	doc := document.OutboxDocument{
		EventName:  entry.EventName,
		EntityName: entry.EntityName,
		EventData:  string(entry.EventData),
		CreatedAt:  time.Now(),
	}
	_, err := r.Create(ctx, &doc)
	return err
}

// FetchPending returns entries with the fewest failed attempts first, oldest
// first within the same attempt count, so entries that keep failing cannot
// fill every batch ahead of fresh events.
func (r *OutboxRepository) FetchPending(ctx context.Context, limit int) ([]outbox.Entry, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "attempts", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	docs, err := r.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	entries := make([]outbox.Entry, len(docs))
	for i, doc := range docs {
		entries[i] = outbox.Entry{
			ID:         doc.ID.Hex(),
			EventName:  doc.EventName,
			EntityName: doc.EntityName,
			EventData:  []byte(doc.EventData),
			Attempts:   doc.Attempts,
		}
	}

	return entries, nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id string, cause error) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return parseError(err)
	}

	_, err = r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$inc": bson.M{"attempts": 1},
			"$set": bson.M{"last_error": cause.Error()},
		},
	)
	return parseError(err)
}

func (r *OutboxRepository) Delete(ctx context.Context, id string) error {
	err := r.DeleteByID(ctx, id)
	if err != nil && !serviceerrors.IsOfKind(err, serviceerrors.KindNotFound) {
		return err
	}
	return nil
}
