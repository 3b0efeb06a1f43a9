package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/port"
)

// Recorder writes domain events to the outbox. Called with a transaction
// context, the entry commits or aborts together with the caller's writes.
type Recorder struct {
	outbox Repository
}

func NewRecorder(outbox Repository) port.EventPort {
	return &Recorder{outbox: outbox}
}

func (r *Recorder) Record(ctx context.Context, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.GetName(), err)
	}

	return r.outbox.Insert(ctx, Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  data,
	})
}
