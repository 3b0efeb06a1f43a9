package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/warehouse/internal/adapters/config"
	"github.com/rafaelleal24/warehouse/internal/adapters/http"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/controllers"
	"github.com/rafaelleal24/warehouse/internal/adapters/jwt"
	"github.com/rafaelleal24/warehouse/internal/adapters/mongo"
	"github.com/rafaelleal24/warehouse/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/warehouse/internal/adapters/outbox"
	"github.com/rafaelleal24/warehouse/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/warehouse/internal/adapters/redis"
	"github.com/rafaelleal24/warehouse/internal/core/domain"
	"github.com/rafaelleal24/warehouse/internal/core/logger"
	"github.com/rafaelleal24/warehouse/internal/core/service"
)

// @title       Warehouse API
// @version     1.0
// @description Product inventory API with token-based authentication

// @host     localhost:3000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	if err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		IsProduction:      cfg.Logger.IsProduction,
		Level:             cfg.Logger.Level,
		Format:            cfg.Logger.Format,
	}); err != nil {
		// logger not available yet, fall back to stderr
		fmt.Fprintln(os.Stderr, "failed to initialize logger: "+err.Error())
		os.Exit(1)
	}

	// cancelled on SIGINT/SIGTERM; stops the outbox handler and the HTTP server
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		fatal(ctx, "Invalid configuration", err)
	}
	if cfg.Logger.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize database connection
	mongoClient, err := mongo.NewConnection(ctx, cfg.Mongo)
	if err != nil {
		fatal(ctx, "Failed to connect to MongoDB", err)
	}
	defer mongo.Disconnect(mongoClient)
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	database := mongoClient.Database(cfg.Mongo.Database)
	if err := repository.EnsureSchema(ctx, database); err != nil {
		fatal(ctx, "Failed to prepare MongoDB collections", err)
	}

	// initialize redis connection
	redisClient, err := redis.NewConnection(ctx, cfg.Redis)
	if err != nil {
		fatal(ctx, "Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		fatal(ctx, "Failed to connect to RabbitMQ", err)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", map[string]any{"exchange": cfg.RabbitMQ.Exchange.Name})

	// repositories
	productRepository := repository.NewProductRepository(database)
	userRepository := repository.NewUserRepository(database)
	outboxRepository := repository.NewOutboxRepository(database)
	txManager := mongo.NewTransactionManager(mongoClient)
	revokedTokens := redis.NewCache[domain.Identity](redisClient, "revoked_token")

	tokenManager, err := jwt.NewTokenManager(cfg.Auth)
	if err != nil {
		fatal(ctx, "Failed to create token manager", err)
	}

	// outbox handler
	outboxHandler := outbox.NewHandler(outboxRepository, broker, cfg.Outbox)
	outboxDone := make(chan struct{})
	go func() {
		defer close(outboxDone)
		outboxHandler.Start(ctx)
	}()
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	// services
	productService := service.NewProductService(productRepository, outbox.NewRecorder(outboxRepository), txManager)
	authService := service.NewAuthService(userRepository, tokenManager, revokedTokens, cfg.Auth.BcryptCost)

	// controllers
	productController := controllers.NewProductController(productService)
	authController := controllers.NewAuthController(authService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		{Name: "mongodb", Check: func(ctx context.Context) error { return mongo.Ping(ctx, mongoClient) }},
		{Name: "redis", Check: redisClient.Ping},
		{Name: "rabbitmq", Check: broker.HealthCheck},
	})

	router := http.NewRouter(healthController, productController, authController, authService)

	logger.Info(ctx, "Starting HTTP server", map[string]any{"addr": cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port})
	if err := router.ListenAndServe(ctx, cfg.HTTP); err != nil {
		logger.Error(ctx, "HTTP server stopped with error", err, nil)
	}
	stop()
	<-outboxDone
	logger.Info(ctx, "Shutdown complete", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := logger.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintln(os.Stderr, "logger shutdown error: "+err.Error())
	}
}

// fatal flushes the logger before exiting; the OTEL exporter does not exit on
// its own.
func fatal(ctx context.Context, message string, err error) {
	logger.Fatal(ctx, message, err, nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = logger.Shutdown(shutdownCtx)
	os.Exit(1)
}
