package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Aggregation modes accepted by MAINT_AGGREGATION.
const (
	AggregationIndependentMax = "independent_max"
	AggregationMostRecent     = "most_recent"
)

// Account is a user seeded into the in-memory directory at startup.
type Account struct {
	Username string
	Password string
}

// Config holds all environment-driven settings.
type Config struct {
	Port            string
	JWTSecret       string
	JWTExpiry       time.Duration
	Operator        Account
	Viewer          Account
	MQTTBroker      string
	MQTTTopic       string
	MQTTClientID    string
	LogLevel        string
	LogFormat       string
	Aggregation     string
	RateLimitMax    int
	RateLimitWindow int
}

// Load reads configuration from environment and optional .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: getenv("JWT_SECRET", "default-secret-key-change-in-production"),
		JWTExpiry: getenvDuration("JWT_EXPIRY", 24*time.Hour),
		Operator: Account{
			Username: getenv("OPERATOR_USERNAME", "operator"),
			Password: getenv("OPERATOR_PASSWORD", ""),
		},
		Viewer: Account{
			Username: getenv("VIEWER_USERNAME", ""),
			Password: getenv("VIEWER_PASSWORD", ""),
		},
		MQTTBroker:      getenv("MQTT_BROKER", ""),
		MQTTTopic:       getenv("MQTT_TOPIC", "motomaint/due"),
		MQTTClientID:    getenv("MQTT_CLIENT_ID", "motomaint"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
		Aggregation:     getenv("MAINT_AGGREGATION", AggregationIndependentMax),
		RateLimitMax:    clampInt(getenvInt("RATE_LIMIT_REQUESTS", 100), 1, 10000),
		RateLimitWindow: clampInt(getenvInt("RATE_LIMIT_WINDOW_SECONDS", 60), 1, 3600),
	}

	if cfg.Aggregation != AggregationIndependentMax && cfg.Aggregation != AggregationMostRecent {
		log.WithField("aggregation", cfg.Aggregation).Warn("Unknown aggregation mode, using independent_max")
		cfg.Aggregation = AggregationIndependentMax
	}

	return cfg
}

// ConfigureLogger applies the level and format settings to the standard logrus logger.
func (c Config) ConfigureLogger() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithError(err).Warn("Invalid log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
