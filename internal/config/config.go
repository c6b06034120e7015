package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DebugModeEnv is the environment variable for debug mode.
	DebugModeEnv = "DEBUG_MODE"

	// LogFormatEnv is the environment variable for log format ("json" or "text").
	LogFormatEnv = "LOG_FORMAT"

	// StorageDriverEnv is the environment variable selecting the product storage backend.
	StorageDriverEnv = "STORAGE_DRIVER"

	// MongoURIEnv is the environment variable for MongoDB connection URI.
	MongoURIEnv = "MONGO_URI"

	// MongoDBEnv is the environment variable for MongoDB database name.
	MongoDBEnv = "MONGO_DB"

	// MongoCollectionEnv is the environment variable for the products collection name.
	MongoCollectionEnv = "MONGO_COLLECTION"

	// DBHostEnv is the environment variable for database host.
	DBHostEnv = "DB_HOST"

	// DBPortEnv is the environment variable for database port.
	DBPortEnv = "DB_PORT"

	// DBUserEnv is the environment variable for database user.
	DBUserEnv = "DB_USER"

	// DBPassEnv is the environment variable for database password.
	DBPassEnv = "DB_PASS"

	// DBNameEnv is the environment variable for database name.
	DBNameEnv = "DB_NAME"

	// HTTPServerPortEnv is the environment variable for HTTP server port.
	HTTPServerPortEnv = "HTTP_SERVER_PORT"

	// MetricsServerPortEnv is the environment variable for metrics server port.
	MetricsServerPortEnv = "METRICS_SERVER_PORT"

	// EnvFilePath is the environment variable for .env file path (only for local/test environment).
	EnvFilePath = "ENV_PATH"

	// DefaultEnvFilePath is the default path to the .env file.
	DefaultEnvFilePath = ".env"

	// AWSRegionEnv is the environment variable for AWS region.
	AWSRegionEnv = "AWS_REGION"

	// AWSEndpointEnv is the environment variable for AWS endpoint.
	AWSEndpointEnv = "AWS_ENDPOINT"

	// SQSQueueURLEnv is the environment variable for SQS queue URL.
	SQSQueueURLEnv = "SQS_QUEUE_URL"
)

const (
	// StorageMongo stores products as documents in MongoDB.
	StorageMongo = "mongo"

	// StoragePostgres stores products as rows in PostgreSQL.
	StoragePostgres = "postgres"

	// LogFormatJSON writes one JSON object per log record.
	LogFormatJSON = "json"

	// LogFormatText writes colored human readable log lines.
	LogFormatText = "text"

	defaultHTTPPort        = "8080"
	defaultMetricsPort     = "9090"
	defaultMongoDB         = "product-service"
	defaultMongoCollection = "products"
	defaultAWSRegion       = "us-east-1"
)

var (
	// ErrMissingConfig is returned when required configuration values are missing.
	ErrMissingConfig = errors.New("missing config data")

	// ErrUnknownStorageDriver is returned when STORAGE_DRIVER names an unsupported backend.
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
)

// Config represents the application configuration.
type Config struct {
	DebugMode     bool
	LogFormat     string
	StorageDriver string
	Mongo         Mongo
	Database      DB
	HTTPServer    Server
	MetricsServer Server
	AWS           AWSConfig
}

// Mongo represents MongoDB connection settings.
type Mongo struct {
	URI        string
	Database   string
	Collection string
}

// AWSConfig represents AWS-specific configuration settings.
type AWSConfig struct {
	Region      string
	Endpoint    string
	SQSQueueURL string
}

// DB represents PostgreSQL configuration settings.
type DB struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

// Server represents server configuration settings.
type Server struct {
	Port string
}

// EventsEnabled reports whether product events should be published to SQS.
func (c *Config) EventsEnabled() bool {
	return c.AWS.SQSQueueURL != ""
}

func allNonEmpty(keyValues map[string]string) error {
	for key, value := range keyValues {
		if value == "" {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("error", "value is empty"))
			return fmt.Errorf("%w for key: %s", ErrMissingConfig, key)
		}
	}
	return nil
}

func allNumbers(keyValues map[string]string) error {
	for key, value := range keyValues {
		_, err := strconv.Atoi(value)
		if err != nil {
			slog.Error("configuration validation failed", slog.String("key", key), slog.String("value", value), slog.String("error", err.Error()))
			return fmt.Errorf("invalid number for key %s: %w", key, err)
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}

	if err := allNumbers(map[string]string{
		HTTPServerPortEnv:    c.HTTPServer.Port,
		MetricsServerPortEnv: c.MetricsServer.Port,
	}); err != nil {
		return fmt.Errorf("invalid port number: %w", err)
	}

	return c.validateLogFormat()
}

func (c *Config) validateStorage() error {
	switch c.StorageDriver {
	case StorageMongo:
		if err := allNonEmpty(map[string]string{
			MongoURIEnv:        c.Mongo.URI,
			MongoDBEnv:         c.Mongo.Database,
			MongoCollectionEnv: c.Mongo.Collection,
		}); err != nil {
			return fmt.Errorf("mongo configuration incomplete: %w", err)
		}
	case StoragePostgres:
		if err := allNonEmpty(map[string]string{
			DBHostEnv: c.Database.Host,
			DBUserEnv: c.Database.User,
			DBNameEnv: c.Database.Name,
		}); err != nil {
			return fmt.Errorf("database configuration incomplete: %w", err)
		}
		if err := allNumbers(map[string]string{
			DBPortEnv: c.Database.Port,
		}); err != nil {
			return fmt.Errorf("invalid port number: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.StorageDriver)
	}
	return nil
}

func (c *Config) validateLogFormat() error {
	if c.LogFormat != LogFormatJSON && c.LogFormat != LogFormatText {
		return fmt.Errorf("unsupported log format %q", c.LogFormat)
	}
	return nil
}

// validateConsumer checks only what the events consumer needs: a queue and a log format.
func (c *Config) validateConsumer() error {
	if err := allNonEmpty(map[string]string{
		SQSQueueURLEnv: c.AWS.SQSQueueURL,
		AWSRegionEnv:   c.AWS.Region,
	}); err != nil {
		return fmt.Errorf("aws configuration incomplete: %w", err)
	}
	return c.validateLogFormat()
}

func getEnv(name, defaultValue string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return defaultValue
}

func getEnvAsBool(name string, defaultValue bool) bool {
	if val, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		return val
	}
	return defaultValue
}

// ApplyEnvFile loads environment variables from the specified .env files.
func ApplyEnvFile(files ...string) error {
	err := godotenv.Load(files...)
	if err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables and validates it.
func LoadFromEnv() (*Config, error) {
	conf := fromEnv()
	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}

// LoadConsumerFromEnv loads configuration for the product events consumer.
// Storage and server settings are not validated; SQS_QUEUE_URL is required.
func LoadConsumerFromEnv() (*Config, error) {
	conf := fromEnv()
	if err := conf.validateConsumer(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return conf, nil
}

func fromEnv() *Config {
	envPath := getEnv(EnvFilePath, DefaultEnvFilePath)
	err := ApplyEnvFile(envPath)
	if err != nil {
		// just log the error, maybe all envs are set in another way
		slog.Info("failed to load from .env", slog.Any("err", err))
	}

	return &Config{
		DebugMode:     getEnvAsBool(DebugModeEnv, false),
		LogFormat:     strings.ToLower(getEnv(LogFormatEnv, LogFormatJSON)),
		StorageDriver: strings.ToLower(getEnv(StorageDriverEnv, StorageMongo)),
		Mongo: Mongo{
			URI:        os.Getenv(MongoURIEnv),
			Database:   getEnv(MongoDBEnv, defaultMongoDB),
			Collection: getEnv(MongoCollectionEnv, defaultMongoCollection),
		},
		Database: DB{
			Host:     os.Getenv(DBHostEnv),
			User:     os.Getenv(DBUserEnv),
			Password: os.Getenv(DBPassEnv),
			Name:     os.Getenv(DBNameEnv),
			Port:     getEnv(DBPortEnv, "5432"),
		},
		HTTPServer: Server{
			Port: getEnv(HTTPServerPortEnv, defaultHTTPPort),
		},
		MetricsServer: Server{
			Port: getEnv(MetricsServerPortEnv, defaultMetricsPort),
		},
		AWS: AWSConfig{
			Region:      getEnv(AWSRegionEnv, defaultAWSRegion),
			Endpoint:    os.Getenv(AWSEndpointEnv),
			SQSQueueURL: os.Getenv(SQSQueueURLEnv),
		},
	}
}
