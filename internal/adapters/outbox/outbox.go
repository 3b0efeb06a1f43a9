package outbox

import "context"

// Entry is an event waiting to be published. EventData is the JSON encoding
// of the domain event.
type Entry struct {
	ID         string
	EventName  string
	EntityName string
	EventData  []byte
	Attempts   int
}

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
type Repository interface {
	Insert(ctx context.Context, entry Entry) error
	FetchPending(ctx context.Context, limit int) ([]Entry, error)
	MarkFailed(ctx context.Context, id string, cause error) error
	Delete(ctx context.Context, id string) error
}
