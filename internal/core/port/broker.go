package port

import "context"

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// BrokerPort publishes an already serialized event. The routing key is the
// event name.
type BrokerPort interface {
	Publish(ctx context.Context, eventName, entityName string, payload []byte) error
}
