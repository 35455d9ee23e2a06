package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPPort string

	// CartBackend selects the snapshot store: file, redis or mongo.
	CartBackend string
	CartDir     string
	CartProfile string

	RedisAddr     string
	RedisPassword string
	MongoURI      string
	MongoDBName   string

	// Base URLs of the three backend services.
	OrdersBaseURL    string
	MenuBaseURL      string
	InventoryBaseURL string

	BackendTimeout  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	DefaultBuyerID        int64
	StrictBuyerResolution bool

	JournalPath       string
	MigrationsDirPath string

	// KafkaBrokers empty disables the cross-surface bridge.
	KafkaBrokers []string
	KafkaTopic   string
}

func Load() *Config {
	return &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		CartBackend: getEnv("CART_BACKEND", "file"),
		CartDir:     getEnv("CART_DIR", "./data"),
		CartProfile: getEnv("CART_PROFILE", "default"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:   getEnv("MONGO_DB_NAME", "storefront"),

		OrdersBaseURL:    getEnv("ORDERS_BASE_URL", "http://localhost:8000/api/orders"),
		MenuBaseURL:      getEnv("MENU_BASE_URL", "http://localhost:8081/api/menu"),
		InventoryBaseURL: getEnv("INVENTORY_BASE_URL", "http://localhost:3000/api/inventory"),

		BackendTimeout:  getDuration("BACKEND_TIMEOUT", 10*time.Second),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DefaultBuyerID:        getInt64("DEFAULT_BUYER_ID", 1),
		StrictBuyerResolution: getBool("STRICT_BUYER_RESOLUTION", false),

		JournalPath:       getEnv("JOURNAL_PATH", "./data/journal.db"),
		MigrationsDirPath: getEnv("JOURNAL_MIGRATIONS_DIR", "./internal/journal/migrations"),

		KafkaBrokers: getList("KAFKA_BROKERS"),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "cart-signals"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
