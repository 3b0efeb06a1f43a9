package outbox

import (
	"context"
	"time"

	"github.com/rafaelleal24/warehouse/internal/adapters/config"
	"github.com/rafaelleal24/warehouse/internal/core/logger"
	"github.com/rafaelleal24/warehouse/internal/core/port"
)

type Handler struct {
	outbox   Repository
	broker   port.BrokerPort
	interval time.Duration
	batch    int
}

func NewHandler(outbox Repository, broker port.BrokerPort, config config.OutboxConfig) *Handler {
	return &Handler{
		outbox:   outbox,
		broker:   broker,
		interval: config.Interval,
		batch:    config.BatchSize,
	}
}

// Start drains whatever is pending and then polls on every tick until ctx is
// cancelled. Entries that fail to publish stay in the outbox for a later tick.
func (h *Handler) Start(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.processEvents(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.processEvents(ctx)
		}
	}
}

func (h *Handler) processEvents(ctx context.Context) (published, failed int) {
	entries, err := h.outbox.FetchPending(ctx, h.batch)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error(ctx, "outbox: failed to fetch pending events", err, map[string]any{
				"batch": h.batch,
			})
		}
		return 0, 0
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			break
		}

		eventLogAttributes := map[string]any{
			"event_id":    entry.ID,
			"event_name":  entry.EventName,
			"entity_name": entry.EntityName,
			"attempts":    entry.Attempts,
		}
		if err := h.broker.Publish(ctx, entry.EventName, entry.EntityName, entry.EventData); err != nil {
			failed++
			logger.Error(ctx, "outbox: failed to publish event", err, eventLogAttributes)
			if markErr := h.outbox.MarkFailed(ctx, entry.ID, err); markErr != nil {
				logger.Warn(ctx, "outbox: failed to record publish failure", eventLogAttributes)
			}
			continue
		}

		published++
		logger.Debug(ctx, "outbox: event published", eventLogAttributes)

		if err := h.outbox.Delete(ctx, entry.ID); err != nil {
			logger.Error(ctx, "outbox: failed to delete event after publish", err, eventLogAttributes)
		}
	}

	if len(entries) > 0 {
		logger.Info(ctx, "outbox: batch processed", map[string]any{
			"published": published,
			"failed":    failed,
		})
	}
	return published, failed
}
