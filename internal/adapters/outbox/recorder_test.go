package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rafaelleal24/warehouse/internal/adapters/outbox"
	outboxmock "github.com/rafaelleal24/warehouse/internal/adapters/outbox/mock"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"go.uber.org/mock/gomock"
)

func TestRecorder_Record(t *testing.T) {
	t.Run("stores the event as an outbox entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxmock.NewMockRepository(ctrl)
		recorder := outbox.NewRecorder(repo)

		event := domain.NewProductCreatedEvent(&domain.Product{
			ID:       domain.ID("aabbccddee112233aabbccdd"),
			Name:     "Widget",
			Quantity: 3,
			Price:    9.5,
		})

		repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, entry outbox.Entry) error {
				if entry.EventName != "product.created" || entry.EntityName != "product" {
					t.Fatalf("unexpected entry %+v", entry)
				}
				var payload map[string]any
				if err := json.Unmarshal(entry.EventData, &payload); err != nil {
					t.Fatalf("expected JSON payload, got %v", err)
				}
				if payload["productId"] != "aabbccddee112233aabbccdd" || payload["name"] != "Widget" {
					t.Fatalf("unexpected payload %v", payload)
				}
				return nil
			})

		if err := recorder.Record(context.Background(), event); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("propagates insert errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := outboxmock.NewMockRepository(ctrl)
		recorder := outbox.NewRecorder(repo)
		insertErr := errors.New("write conflict")

		repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(insertErr)

		err := recorder.Record(context.Background(), domain.NewProductDeletedEvent([]domain.ID{"aabbccddee112233aabbccdd"}, 1))
		if !errors.Is(err, insertErr) {
			t.Fatalf("expected insert error, got %v", err)
		}
	})
}
