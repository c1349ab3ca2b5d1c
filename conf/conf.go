package conf

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreDynamoDb = "dynamodb"
	StoreMemory   = "memory"
)

type Config struct {
	HttpAddr  string
	JwtKey    []byte
	LogFormat string
	LogLevel  string

	JudgeURL         string
	JudgeTimeout     time.Duration
	EvalConcurrency  int
	MaxSubmSizeBytes int

	SubmStore    string // postgres | dynamodb | memory
	DdbSubmTable string
	AwsRegion    string

	OtelEndpoint string // empty disables tracing
}

// Load reads the configuration and checks everything the server needs.
func Load() (Config, error) {
	c := Read()
	return c, c.validate()
}

// Read reads .env (if present) and the process environment without
// validating. Tools that need only part of the config check it themselves.
func Read() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on environment variables")
	}

	return Config{
		HttpAddr:         getEnvOr("HTTP_ADDR", ":8080"),
		JwtKey:           []byte(os.Getenv("JWT_KEY")),
		LogFormat:        getEnvOr("LOG_FORMAT", "text"),
		LogLevel:         getEnvOr("LOG_LEVEL", "info"),
		JudgeURL:         os.Getenv("JUDGE_URL"),
		JudgeTimeout:     getEnvAsDuration("JUDGE_TIMEOUT", 10*time.Second),
		EvalConcurrency:  getEnvAsInt("EVAL_CONCURRENCY", 4),
		MaxSubmSizeBytes: getEnvAsInt("MAX_SUBM_SIZE_BYTES", 64*1024),
		SubmStore:        getEnvOr("SUBM_STORE", StorePostgres),
		DdbSubmTable:     getEnvOr("DDB_SUBM_TABLE", "contest_submissions"),
		AwsRegion:        getEnvOr("AWS_REGION", "eu-central-1"),
		OtelEndpoint:     os.Getenv("OTEL_ENDPOINT"),
	}
}

func (c Config) validate() error {
	if c.JudgeURL == "" {
		return fmt.Errorf("JUDGE_URL is not set")
	}
	if len(c.JwtKey) == 0 {
		return fmt.Errorf("JWT_KEY is not set")
	}
	if c.EvalConcurrency <= 0 {
		return fmt.Errorf("EVAL_CONCURRENCY must be positive, got %d", c.EvalConcurrency)
	}
	if c.JudgeTimeout <= 0 {
		return fmt.Errorf("JUDGE_TIMEOUT must be positive, got %s", c.JudgeTimeout)
	}
	return c.ValidateStore()
}

func (c Config) ValidateStore() error {
	switch c.SubmStore {
	case StorePostgres, StoreDynamoDb, StoreMemory:
	default:
		return fmt.Errorf("unknown SUBM_STORE %q", c.SubmStore)
	}
	if c.SubmStore == StoreDynamoDb && c.DdbSubmTable == "" {
		return fmt.Errorf("DDB_SUBM_TABLE is not set")
	}
	return nil
}

func getEnvOr(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}
