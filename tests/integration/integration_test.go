package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	adaptconfig "github.com/rafaelleal24/warehouse/internal/adapters/config"
	adapthttp "github.com/rafaelleal24/warehouse/internal/adapters/http"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/controllers"
	adaptjwt "github.com/rafaelleal24/warehouse/internal/adapters/jwt"
	adaptmongo "github.com/rafaelleal24/warehouse/internal/adapters/mongo"
	"github.com/rafaelleal24/warehouse/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/warehouse/internal/adapters/outbox"
	adaptrabbitmq "github.com/rafaelleal24/warehouse/internal/adapters/rabbitmq"
	adaptredis "github.com/rafaelleal24/warehouse/internal/adapters/redis"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/service"
)

const testExchange = "exchange.product.it"

var (
	mongoClient  *mongo.Client
	redisClient  *adaptredis.Client
	broker       *adaptrabbitmq.RabbitMQAdapter
	amqpEndpoint string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		log.Fatalf("mongodb container: %v", err)
	}
	mongoEndpoint, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("mongodb connection string: %v", err)
	}
	mongoClient, err = mongo.Connect(ctx, options.Client().
		ApplyURI(mongoEndpoint).
		SetDirect(true).
		SetConnectTimeout(30*time.Second).
		SetServerSelectionTimeout(30*time.Second))
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("mongodb ping: %v", err)
	}

	// --- Redis ---
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Fatalf("redis container: %v", err)
	}
	redisEndpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("redis connection string: %v", err)
	}
	redisClient, err = adaptredis.NewConnection(ctx, adaptconfig.RedisConfig{URL: redisEndpoint, ConnectTimeout: 5 * time.Second})
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}

	// --- RabbitMQ ---
	rabbitContainer, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("rabbitmq container: %v", err)
	}
	amqpEndpoint, err = rabbitContainer.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("rabbitmq amqp url: %v", err)
	}
	broker, err = adaptrabbitmq.NewRabbitMQAdapter(adaptconfig.RabbitMQConfig{
		URL:        amqpEndpoint,
		MaxRetries: 2,
		RetryDelay: 100 * time.Millisecond,
		Exchange:   adaptconfig.ExchangeConfig{Name: testExchange, Type: "topic", Durable: true},
	})
	if err != nil {
		log.Fatalf("rabbitmq adapter: %v", err)
	}

	code := m.Run()

	_ = broker.Close()
	_ = redisClient.Close()
	_ = mongoClient.Disconnect(ctx)
	_ = mongoContainer.Terminate(ctx)
	_ = redisContainer.Terminate(ctx)
	_ = rabbitContainer.Terminate(ctx)

	os.Exit(code)
}

func setupConsumer(t *testing.T, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(amqpEndpoint)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	require.NoError(t, err)
	t.Cleanup(func() { ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	require.NoError(t, err)
	require.NoError(t, ch.QueueBind(q.Name, routingKey, testExchange, false, nil))

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	require.NoError(t, err)
	return msgs
}

// startServer wires the whole application against a fresh database and starts
// the outbox handler for the lifetime of the test.
func startServer(t *testing.T, dbName string) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	db := mongoClient.Database(dbName)
	require.NoError(t, repository.EnsureSchema(ctx, db))

	outboxRepo := repository.NewOutboxRepository(db)
	productService := service.NewProductService(
		repository.NewProductRepository(db),
		outbox.NewRecorder(outboxRepo),
		adaptmongo.NewTransactionManager(mongoClient),
	)

	tokens, err := adaptjwt.NewTokenManager(adaptconfig.AuthConfig{
		JWTSecret: "integration-secret",
		JWTIssuer: "warehouse",
		TokenTTL:  time.Hour,
	})
	require.NoError(t, err)
	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		tokens,
		adaptredis.NewCache[domain.Identity](redisClient, dbName+"-revoked"),
		4,
	)

	handler := outbox.NewHandler(outboxRepo, broker, adaptconfig.OutboxConfig{
		Interval:  100 * time.Millisecond,
		BatchSize: 50,
	})
	done := make(chan struct{})
	go func() {
		defer close(done)
		handler.Start(ctx)
	}()

	router := adapthttp.NewRouter(
		controllers.NewHealthController([]controllers.HealthChecker{
			{Name: "mongodb", Check: func(ctx context.Context) error { return adaptmongo.Ping(ctx, mongoClient) }},
			{Name: "redis", Check: redisClient.Ping},
			{Name: "rabbitmq", Check: broker.HealthCheck},
		}),
		controllers.NewProductController(productService),
		controllers.NewAuthController(authService),
		authService,
	)
	server := httptest.NewServer(router.Engine())

	t.Cleanup(func() {
		server.Close()
		cancel()
		<-done
	})
	return server
}

type client struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func (c *client) do(method, path string, body any) (int, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, c.server.URL+path, reader)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.server.Client().Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, raw
}

func (c *client) login(username, password string) {
	c.t.Helper()

	status, _ := c.do(http.MethodPost, "/auth/register", map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusCreated, status)

	status, raw := c.do(http.MethodPost, "/auth/login", map[string]string{"username": username, "password": password})
	require.Equal(c.t, http.StatusOK, status)

	var token controllers.TokenResponse
	require.NoError(c.t, json.Unmarshal(raw, &token))
	c.token = token.AccessToken
}

func waitForEvent(t *testing.T, msgs <-chan amqp.Delivery) amqp.Delivery {
	t.Helper()
	select {
	case msg := <-msgs:
		return msg
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for event")
		return amqp.Delivery{}
	}
}

func TestIntegration_ProductLifecycle(t *testing.T) {
	created := setupConsumer(t, "product.created")
	updated := setupConsumer(t, "product.updated")
	deleted := setupConsumer(t, "product.deleted")

	api := &client{t: t, server: startServer(t, "int_lifecycle")}
	api.login("alice", "secret1")

	status, raw := api.do(http.MethodPost, "/products", map[string]any{"name": "Widget", "quantity": 10, "price": 9.5})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var product controllers.ProductResponse
	require.NoError(t, json.Unmarshal(raw, &product))
	require.NotEmpty(t, product.ID)

	msg := waitForEvent(t, created)
	assert.Equal(t, "product.created", msg.Type)
	assert.Equal(t, "product", msg.Headers["entity"])
	var createdEvent domain.ProductCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Body, &createdEvent))
	assert.Equal(t, domain.ID(product.ID), createdEvent.ProductID)

	status, raw = api.do(http.MethodGet, "/products/"+product.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), `"name":"Widget"`)

	status, raw = api.do(http.MethodPut, "/products/"+product.ID, map[string]any{"quantity": 3})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), `"quantity":3`)
	assert.Contains(t, string(raw), `"price":9.5`)

	var updatedEvent domain.ProductUpdatedEvent
	require.NoError(t, json.Unmarshal(waitForEvent(t, updated).Body, &updatedEvent))
	assert.Equal(t, 3, updatedEvent.Quantity)

	status, _ = api.do(http.MethodDelete, "/products/"+product.ID, nil)
	require.Equal(t, http.StatusNoContent, status)

	var deletedEvent domain.ProductDeletedEvent
	require.NoError(t, json.Unmarshal(waitForEvent(t, deleted).Body, &deletedEvent))
	assert.Equal(t, []domain.ID{domain.ID(product.ID)}, deletedEvent.ProductIDs)

	status, raw = api.do(http.MethodGet, "/products/"+product.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"Product not found"}`, string(raw))
}

func TestIntegration_ListAndBulkDelete(t *testing.T) {
	api := &client{t: t, server: startServer(t, "int_list")}
	api.login("bob", "secret1")

	var ids []string
	for _, p := range []struct {
		name  string
		price float64
	}{{"Red Chair", 20}, {"Blue Chair", 35}, {"Table", 120}} {
		status, raw := api.do(http.MethodPost, "/products", map[string]any{"name": p.name, "quantity": 1, "price": p.price})
		require.Equal(t, http.StatusCreated, status, string(raw))
		var product controllers.ProductResponse
		require.NoError(t, json.Unmarshal(raw, &product))
		ids = append(ids, product.ID)
	}

	status, raw := api.do(http.MethodGet, "/products?name=chair&maxPrice=30", nil)
	require.Equal(t, http.StatusOK, status)
	var page controllers.ProductListResponse
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(1), page.TotalProducts)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Red Chair", page.Data[0].Name)

	status, raw = api.do(http.MethodGet, "/products?page=2&limit=2", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(3), page.TotalProducts)
	assert.Equal(t, int64(2), page.TotalPages)
	require.Len(t, page.Data, 1)
	assert.Equal(t, ids[2], page.Data[0].ID)

	status, raw = api.do(http.MethodDelete, "/products", map[string]any{"ids": "not-an-array"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"message":"IDs should be an array"}`, string(raw))

	status, _ = api.do(http.MethodDelete, "/products", map[string]any{"ids": []string{ids[0], ids[1], "aabbccddee112233aabbccdd"}})
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = api.do(http.MethodDelete, "/products", map[string]any{"ids": []string{ids[0]}})
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"message":"No products found to delete"}`, string(raw))

	status, raw = api.do(http.MethodGet, "/products", nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(raw, &page))
	assert.Equal(t, int64(1), page.TotalProducts)
}

func TestIntegration_AuthFlow(t *testing.T) {
	api := &client{t: t, server: startServer(t, "int_auth")}

	status, _ := api.do(http.MethodPost, "/products", map[string]any{"name": "x", "quantity": 1, "price": 1})
	assert.Equal(t, http.StatusUnauthorized, status)

	api.token = "not-a-jwt"
	status, _ = api.do(http.MethodPost, "/products", map[string]any{"name": "x", "quantity": 1, "price": 1})
	assert.Equal(t, http.StatusForbidden, status)
	api.token = ""

	api.login("Carol", "secret1")

	status, raw := api.do(http.MethodPost, "/auth/register", map[string]string{"username": "carol", "password": "other12"})
	assert.Equal(t, http.StatusConflict, status)
	assert.JSONEq(t, `{"message":"Username already taken"}`, string(raw))

	status, _ = api.do(http.MethodPost, "/products", map[string]any{"name": "x", "quantity": 1, "price": 1})
	assert.Equal(t, http.StatusCreated, status)

	status, _ = api.do(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = api.do(http.MethodPost, "/products", map[string]any{"name": "x", "quantity": 1, "price": 1})
	assert.Equal(t, http.StatusForbidden, status)
	assert.JSONEq(t, `{"message":"Invalid or expired token"}`, string(raw))
}

func TestIntegration_Health(t *testing.T) {
	api := &client{t: t, server: startServer(t, "int_health")}

	status, raw := api.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","services":{"mongodb":"ok","redis":"ok","rabbitmq":"ok"}}`, string(raw))
}
