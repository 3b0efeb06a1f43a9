package rabbitmq_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rafaelleal24/warehouse/internal/adapters/config"
	"github.com/rafaelleal24/warehouse/internal/adapters/rabbitmq"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
)

const testExchange = "exchange.product"

var (
	testAdapter      *rabbitmq.RabbitMQAdapter
	testAmqpEndpoint string
)

func testConfig(maxRetries int) config.RabbitMQConfig {
	return config.RabbitMQConfig{
		URL:        testAmqpEndpoint,
		MaxRetries: maxRetries,
		RetryDelay: 100 * time.Millisecond,
		Exchange: config.ExchangeConfig{
			Name:    testExchange,
			Type:    "topic",
			Durable: true,
		},
	}
}

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("failed to start rabbitmq container: %v", err)
	}

	testAmqpEndpoint, err = container.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("failed to get amqp url: %v", err)
	}

	testAdapter, err = rabbitmq.NewRabbitMQAdapter(testConfig(2))
	if err != nil {
		log.Fatalf("failed to create rabbitmq adapter: %v", err)
	}

	code := m.Run()

	_ = testAdapter.Close()
	_ = container.Terminate(ctx)

	os.Exit(code)
}

// bindQueue returns a delivery channel for messages routed with pattern.
func bindQueue(t *testing.T, pattern string) <-chan amqp.Delivery {
	t.Helper()
	conn, err := amqp.Dial(testAmqpEndpoint)
	if err != nil {
		t.Fatalf("consumer dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("consumer channel failed: %v", err)
	}

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare failed: %v", err)
	}
	if err := ch.QueueBind(q.Name, pattern, testExchange, false, nil); err != nil {
		t.Fatalf("queue bind failed: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume failed: %v", err)
	}
	return msgs
}

func TestRabbitMQAdapter_HealthCheck(t *testing.T) {
	if err := testAdapter.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected healthy, got %v", err)
	}
}

func TestRabbitMQAdapter_Publish(t *testing.T) {
	ctx := context.Background()

	t.Run("message is routed by event name", func(t *testing.T) {
		msgs := bindQueue(t, "product.*")

		body := []byte(`{"productId":"aabbccddee112233aabbccdd"}`)
		if err := testAdapter.Publish(ctx, "product.created", "product", body); err != nil {
			t.Fatalf("publish failed: %v", err)
		}

		select {
		case msg := <-msgs:
			if string(msg.Body) != string(body) {
				t.Fatalf("expected body %s, got %s", body, msg.Body)
			}
			if msg.RoutingKey != "product.created" || msg.Type != "product.created" {
				t.Fatalf("unexpected routing key %q / type %q", msg.RoutingKey, msg.Type)
			}
			if msg.MessageId == "" {
				t.Fatal("expected a message id")
			}
			if msg.ContentType != "application/json" || msg.DeliveryMode != amqp.Persistent {
				t.Fatalf("unexpected content type %q / delivery mode %d", msg.ContentType, msg.DeliveryMode)
			}
			if msg.Headers["entity"] != "product" {
				t.Fatalf("expected entity header, got %v", msg.Headers)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for message")
		}
	})

	t.Run("each message gets its own id", func(t *testing.T) {
		msgs := bindQueue(t, "product.deleted")

		for i := 0; i < 2; i++ {
			if err := testAdapter.Publish(ctx, "product.deleted", "product", []byte(`{}`)); err != nil {
				t.Fatalf("publish failed: %v", err)
			}
		}

		ids := map[string]bool{}
		for i := 0; i < 2; i++ {
			select {
			case msg := <-msgs:
				ids[msg.MessageId] = true
			case <-time.After(5 * time.Second):
				t.Fatal("timed out waiting for message")
			}
		}
		if len(ids) != 2 {
			t.Fatalf("expected 2 distinct message ids, got %v", ids)
		}
	})

	t.Run("cancelled context is not published", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		if err := testAdapter.Publish(cancelled, "product.updated", "product", []byte(`{}`)); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestRabbitMQAdapter_CloseAndReconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("publish after close re-dials", func(t *testing.T) {
		adapter, err := rabbitmq.NewRabbitMQAdapter(testConfig(3))
		if err != nil {
			t.Fatalf("failed to create adapter: %v", err)
		}
		defer adapter.Close()

		if err := adapter.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}
		if err := adapter.Publish(ctx, "product.updated", "product", []byte(`{"test":"after"}`)); err != nil {
			t.Fatalf("publish after close failed: %v", err)
		}
		if err := adapter.HealthCheck(ctx); err != nil {
			t.Fatalf("expected healthy after reconnect, got %v", err)
		}
	})

	t.Run("health check fails after close", func(t *testing.T) {
		adapter, err := rabbitmq.NewRabbitMQAdapter(testConfig(0))
		if err != nil {
			t.Fatalf("failed to create adapter: %v", err)
		}

		_ = adapter.Close()

		if err := adapter.HealthCheck(ctx); err == nil {
			t.Fatal("expected health check to fail after close")
		}
	})
}

func TestRabbitMQAdapter_PublishWaitsForConfirm(t *testing.T) {
	ctx := context.Background()
	const exchange = "exchange.product.confirm"

	cfg := testConfig(0)
	cfg.Exchange.Name = exchange
	adapter, err := rabbitmq.NewRabbitMQAdapter(cfg)
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	defer adapter.Close()

	if err := adapter.Publish(ctx, "product.created", "product", []byte(`{}`)); err != nil {
		t.Fatalf("expected confirmed publish, got %v", err)
	}

	// Remove the exchange behind the adapter's back: the broker then closes
	// the channel instead of accepting the message.
	conn, err := amqp.Dial(testAmqpEndpoint)
	if err != nil {
		t.Fatalf("admin dial failed: %v", err)
	}
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("admin channel failed: %v", err)
	}
	if err := ch.ExchangeDelete(exchange, false, false); err != nil {
		t.Fatalf("exchange delete failed: %v", err)
	}

	timeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := adapter.Publish(timeout, "product.created", "product", []byte(`{}`)); err == nil {
		t.Fatal("expected publish to an unconfirmed exchange to fail")
	}

	t.Run("retry re-declares the exchange and succeeds", func(t *testing.T) {
		cfg := testConfig(1)
		cfg.Exchange.Name = exchange
		retrying, err := rabbitmq.NewRabbitMQAdapter(cfg)
		if err != nil {
			t.Fatalf("failed to create adapter: %v", err)
		}
		defer retrying.Close()

		if err := ch.ExchangeDelete(exchange, false, false); err != nil {
			t.Fatalf("exchange delete failed: %v", err)
		}
		if err := retrying.Publish(ctx, "product.created", "product", []byte(`{}`)); err != nil {
			t.Fatalf("expected publish to succeed after reconnect, got %v", err)
		}
	})
}
