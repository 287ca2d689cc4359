package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env      string
	HTTPAddr string

	// Storage selects the rule/property store: "memory" or "mongo".
	Storage  string
	MongoURI string
	MongoDB  string

	KafkaBrokers     []string
	KafkaTopicPrefix string

	// Global stay bounds applied when no rule covers a check-in day.
	DefaultMinStay int
	DefaultMaxStay int

	Currency        string
	ShutdownTimeout time.Duration
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:      getEnv("APP_ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Storage:  strings.ToLower(getEnv("STORAGE", "memory")),
		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  getEnv("MONGO_DB", "stayable"),
		Currency: strings.ToUpper(getEnv("CURRENCY", "USD")),
	}

	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopicPrefix = getEnv("KAFKA_TOPIC_PREFIX", "")

	minStay, err := parseIntEnv("DEFAULT_MIN_STAY", 1)
	if err != nil {
		return Config{}, err
	}
	cfg.DefaultMinStay = minStay

	maxStay, err := parseIntEnv("DEFAULT_MAX_STAY", 28)
	if err != nil {
		return Config{}, err
	}
	cfg.DefaultMaxStay = maxStay

	shutdown, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.ShutdownTimeout = shutdown

	if cfg.DefaultMinStay < 1 {
		return Config{}, fmt.Errorf("DEFAULT_MIN_STAY must be at least 1")
	}
	if cfg.DefaultMaxStay != 0 && cfg.DefaultMaxStay < cfg.DefaultMinStay {
		return Config{}, fmt.Errorf("DEFAULT_MAX_STAY must be 0 or >= DEFAULT_MIN_STAY")
	}
	if cfg.Storage == "mongo" && cfg.MongoURI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE=mongo")
	}
	if len(cfg.Currency) != 3 {
		return Config{}, fmt.Errorf("CURRENCY must be a 3-letter code")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
