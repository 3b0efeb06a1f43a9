package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var productSchema = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "quantity", "price"},
		"properties": bson.M{
			"name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"quantity": bson.M{
				"bsonType": bson.A{"int", "long"},
			},
			"price": bson.M{
				"bsonType": "number",
			},
		},
	},
}

// EnsureSchema creates the collections with their validators and indexes.
// It is safe to run against a database that is already set up.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	if err := ensureCollection(ctx, db, productsCollection, productSchema); err != nil {
		return err
	}

	indexes := map[string][]mongo.IndexModel{
		productsCollection: {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "price", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		outboxCollection: {
			{Keys: bson.D{{Key: "attempts", Value: 1}, {Key: "created_at", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}

	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	err := db.CreateCollection(ctx, name, options.CreateCollection().SetValidator(validator))
	if err == nil {
		return nil
	}
	if !hasErrorCode(err, errCodeNamespaceExists) {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}

	// Existing collection: bring its validator up to date.
	cmd := bson.D{{Key: "collMod", Value: name}, {Key: "validator", Value: validator}}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to update validator on %s: %w", name, err)
	}
	return nil
}
