package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OutboxDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	EventName  string             `bson:"event_name"`
	EntityName string             `bson:"entity_name"`
	EventData  string             `bson:"event_data"`
	Attempts   int                `bson:"attempts"`
	LastError  string             `bson:"last_error,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (doc OutboxDocument) GetID() primitive.ObjectID {
	return doc.ID
}
