package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the service
type Config struct {
	// HTTP
	Port        string   `validate:"required,numeric"`
	CORSOrigins []string `validate:"min=1"`
	StaticDir   string

	LogLevel string `validate:"omitempty,oneof=debug info warn error"`

	// Dataset overrides the built-in network seed when set
	DatasetPath string

	// Live train simulation
	LiveRefreshInterval time.Duration `validate:"gte=1s"`
	RandomSeed          int64

	// User data store
	StoreDriver    string `validate:"oneof=sqlite postgres redis"`
	SQLitePath     string `validate:"required_if=StoreDriver sqlite"`
	DatabaseURL    string `validate:"required_if=StoreDriver postgres"`
	RedisAddr      string `validate:"required_if=StoreDriver redis"`
	RedisKeyPrefix string

	// Notifications
	AMQPURL     string
	NotifyQueue string `validate:"required_with=AMQPURL"`
}

// LoadEnvFiles reads .env and then .env.local, which overrides it. Missing
// files are ignored.
func LoadEnvFiles(dir string) {
	_ = godotenv.Load(dir + "/.env")
	_ = godotenv.Overload(dir + "/.env.local")
}

// Load reads configuration from environment variables with defaults and
// validates the result
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8081"),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		StaticDir:   getEnv("STATIC_DIR", ""),

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		DatasetPath: getEnv("DATASET_PATH", ""),

		LiveRefreshInterval: time.Duration(getEnvInt("LIVE_REFRESH_INTERVAL", 30)) * time.Second,
		RandomSeed:          int64(getEnvInt("RANDOM_SEED", 0)),

		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", "sqlite")),
		SQLitePath:     getEnv("SQLITE_DATABASE", "data/mindicator.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", "mindicator:"),

		AMQPURL:     getEnv("AMQP_URL", ""),
		NotifyQueue: getEnv("NOTIFY_QUEUE", "notifications"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated value, dropping empty items
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
