package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Port     string `koanf:"PORT"`
	LogLevel string `koanf:"LOG_LEVEL"`

	// StorageBackend selects the table implementation: memory, postgres or mongo.
	StorageBackend string `koanf:"STORAGE_BACKEND"`

	PostgresAddress  string `koanf:"POSTGRES_ADDRESS"`
	PostgresPort     string `koanf:"POSTGRES_PORT"`
	PostgresDB       string `koanf:"POSTGRES_DB"`
	PostgresUsername string `koanf:"POSTGRES_USERNAME"`
	PostgresPassword string `koanf:"POSTGRES_PASSWORD"`

	MongoURI      string `koanf:"MONGO_URI"`
	MongoDatabase string `koanf:"MONGO_DATABASE"`

	// OpenAIEndpoint is the base URL of any OpenAI-compatible server, llama.cpp included.
	OpenAIEndpoint        string        `koanf:"OPENAI_ENDPOINT"`
	OpenAIModelID         string        `koanf:"OPENAI_MODEL_ID"`
	OpenAIAPIKey          string        `koanf:"OPENAI_API_KEY"`
	ProviderRetryAttempts uint          `koanf:"PROVIDER_RETRY_ATTEMPTS"`
	ProviderRetryDelay    time.Duration `koanf:"PROVIDER_RETRY_DELAY"`

	AgentTimeout           time.Duration `koanf:"AGENT_TIMEOUT"`
	RecentTransactionCount int           `koanf:"RECENT_TRANSACTION_COUNT"`
	OperatorWorkers        int           `koanf:"OPERATOR_WORKERS"`

	// AMQPURL empty disables change notifications.
	AMQPURL        string `koanf:"AMQP_URL"`
	AMQPExchange   string `koanf:"AMQP_EXCHANGE"`
	AMQPRoutingKey string `koanf:"AMQP_ROUTING_KEY"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"PORT":                     "9446",
	"LOG_LEVEL":                "info",
	"STORAGE_BACKEND":          StorageMemory,
	"POSTGRES_ADDRESS":         "localhost",
	"POSTGRES_PORT":            "5433",
	"POSTGRES_DB":              "postgres",
	"POSTGRES_USERNAME":        "postgres",
	"POSTGRES_PASSWORD":        "testpassword",
	"MONGO_URI":                "mongodb://localhost:27017",
	"MONGO_DATABASE":           "budget",
	"OPENAI_ENDPOINT":          "http://localhost:8080/v1",
	"OPENAI_MODEL_ID":          "gemma-3-27b-it-qat-IQ4_XS.gguf",
	"OPENAI_API_KEY":           "1",
	"PROVIDER_RETRY_ATTEMPTS":  3,
	"PROVIDER_RETRY_DELAY":     "1s",
	"AGENT_TIMEOUT":            "2m",
	"RECENT_TRANSACTION_COUNT": 10,
	"OPERATOR_WORKERS":         1,
	"AMQP_URL":                 "",
	"AMQP_EXCHANGE":            "budget",
	"AMQP_ROUTING_KEY":         "transaction.changed",
}

func ProcessEnvironmentVariables() (*Config, error) {
	_ = godotenv.Load()
	return Load(env.Provider("", ".", nil))
}

// Load builds a Config from the defaults overridden by the given provider.
func Load(overrides koanf.Provider) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(overrides, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	switch c.StorageBackend {
	case StorageMemory, StoragePostgres, StorageMongo:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND must be one of memory, postgres, mongo: got %q", c.StorageBackend))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.OpenAIEndpoint == "" {
		errs = append(errs, errors.New("OPENAI_ENDPOINT is required"))
	}
	if c.OpenAIModelID == "" {
		errs = append(errs, errors.New("OPENAI_MODEL_ID is required"))
	}
	if c.ProviderRetryAttempts < 1 {
		errs = append(errs, errors.New("PROVIDER_RETRY_ATTEMPTS must be at least 1"))
	}
	if c.RecentTransactionCount < 1 {
		errs = append(errs, errors.New("RECENT_TRANSACTION_COUNT must be at least 1"))
	}
	if c.OperatorWorkers < 1 {
		errs = append(errs, errors.New("OPERATOR_WORKERS must be at least 1"))
	}
	if c.AgentTimeout < 0 {
		errs = append(errs, errors.New("AGENT_TIMEOUT must not be negative"))
	}
	if c.StorageBackend == StorageMongo && c.MongoURI == "" {
		errs = append(errs, errors.New("MONGO_URI is required for the mongo backend"))
	}
	return errors.Join(errs...)
}

// PostgresConnectionString builds the lib/pq connection URL.
func (c *Config) PostgresConnectionString() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}
