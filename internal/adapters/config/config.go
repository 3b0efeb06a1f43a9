package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
)

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	MaxPoolSize            uint64
	MinPoolSize            uint64
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RabbitMQConfig struct {
	URL        string
	MaxRetries int
	RetryDelay time.Duration
	Exchange   ExchangeConfig
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type RedisConfig struct {
	URL            string
	Password       string
	DB             int
	ConnectTimeout time.Duration
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type HTTPConfig struct {
	Port            string
	BindInterface   string
	ShutdownTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	JWTIssuer  string
	TokenTTL   time.Duration
	BcryptCost int
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	IsProduction bool
	Level        string
	Format       string
}

type Config struct {
	Mongo    MongoConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Outbox   OutboxConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

// NewConfig reads a .env file when one is present and then the process
// environment. Missing or malformed values fall back to their defaults.
func NewConfig() *Config {
	_ = godotenv.Load()
	return load()
}

func load() *Config {
	return &Config{
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
			Database:               getStringEnv("MONGO_DATABASE", "warehouse"),
			Timeout:                time.Duration(getIntEnv("MONGO_TIMEOUT", 10)) * time.Second,
			MaxPoolSize:            uint64(getIntEnv("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:            uint64(getIntEnv("MONGO_MIN_POOL_SIZE", 10)),
			ConnectTimeout:         time.Duration(getIntEnv("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
			ServerSelectionTimeout: time.Duration(getIntEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5)) * time.Second,
		},
		Redis: RedisConfig{
			URL:            getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password:       getStringEnv("REDIS_PASSWORD", ""),
			DB:             getIntEnv("REDIS_DB", 0),
			ConnectTimeout: time.Duration(getIntEnv("REDIS_CONNECT_TIMEOUT", 5)) * time.Second,
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  time.Duration(getIntEnv("OUTBOX_INTERVAL", 500)) * time.Millisecond,
		},
		HTTP: HTTPConfig{
			Port:            getStringEnv("HTTP_PORT", "3000"),
			BindInterface:   getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
			ShutdownTimeout: time.Duration(getIntEnv("HTTP_SHUTDOWN_TIMEOUT", 10)) * time.Second,
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getIntEnv("RABBITMQ_RETRY_DELAY", 1)) * time.Second,
			Exchange: ExchangeConfig{
				Name:       getStringEnv("RABBITMQ_EXCHANGE_NAME", "exchange.product"),
				Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
				Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
				AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
			},
		},
		Auth: AuthConfig{
			JWTSecret:  getStringEnv("JWT_SECRET", ""),
			JWTIssuer:  getStringEnv("JWT_ISSUER", "warehouse"),
			TokenTTL:   time.Duration(getIntEnv("JWT_TTL_MINUTES", 60)) * time.Minute,
			BcryptCost: getIntEnv("BCRYPT_COST", 10),
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "warehouse"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
			Level:        getStringEnv("LOG_LEVEL", "debug"),
			Format:       getStringEnv("LOG_FORMAT", "console"),
		},
	}
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}
