package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Backend  BackendConfig
	Redis    RedisConfig
	Session  SessionConfig
	Kafka    KafkaConfig
	Database DatabaseConfig
	Observ   ObservabilityConfig
	Blog     BlogConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// BackendConfig holds the base URLs of the services the storefront composes.
type BackendConfig struct {
	AccountsURL string
	ProductsURL string
	CartURL     string
	OrdersURL   string
	BlogURL     string
	Timeout     time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	LoginPath  string
	// StateIdle is how long unused in-memory cart/order state is kept.
	StateIdle  time.Duration
}

type KafkaConfig struct {
	Brokers          []string
	TopicActivity    string
	TopicOrderEvents string
	ConsumerGroup    string
}

// Enabled reports whether any broker was configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// DatabaseConfig is optional; an empty URL keeps the built-in category catalog.
type DatabaseConfig struct {
	URL string
}

type ObservabilityConfig struct {
	JaegerEndpoint string
}

type BlogConfig struct {
	PublicURL   string
	PreviewSize int
}

func Load() *Config {
	_ = godotenv.Load()

	redisDB := getEnvInt("REDIS_DB", 0, 0)
	timeoutMs := getEnvInt("BACKEND_TIMEOUT_MS", 5000, 1)
	sessionTTL := getEnvInt("SESSION_TTL_SECONDS", 86400, 1)
	stateIdle := getEnvInt("SESSION_STATE_IDLE_SECONDS", 1800, 1)
	previewSize := getEnvInt("BLOG_PREVIEW_SIZE", 3, 1)

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("ENV", "development"),
		},
		Backend: BackendConfig{
			AccountsURL: getEnv("ACCOUNTS_API_URL", "http://localhost:8081/api/v1/accounts"),
			ProductsURL: getEnv("PRODUCTS_API_URL", "http://localhost:8082/api/v1/products"),
			CartURL:     getEnv("CART_API_URL", "http://localhost:8083/api/v1/cart"),
			OrdersURL:   getEnv("ORDERS_API_URL", "http://localhost:8085/api/v1/orders"),
			BlogURL:     getEnv("BLOG_API_URL", "http://localhost:8084"),
			Timeout:     time.Duration(timeoutMs) * time.Millisecond,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "tokohobby_session"),
			TTL:        time.Duration(sessionTTL) * time.Second,
			Secure:     getEnv("SESSION_COOKIE_SECURE", "false") == "true",
			LoginPath:  getEnv("LOGIN_PATH", "/login"),
			StateIdle:  time.Duration(stateIdle) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:          splitCSV(getEnv("KAFKA_BROKERS", "")),
			TopicActivity:    getEnv("KAFKA_TOPIC_STOREFRONT_ACTIVITY", "storefront-activity"),
			TopicOrderEvents: getEnv("KAFKA_TOPIC_ORDER_EVENTS", "order-events"),
			ConsumerGroup:    getEnv("KAFKA_CONSUMER_GROUP", "storefront-group"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Observ: ObservabilityConfig{
			JaegerEndpoint: getEnv("JAEGER_ENDPOINT", "http://localhost:14268/api/traces"),
		},
		Blog: BlogConfig{
			PublicURL:   getEnv("BLOG_PUBLIC_URL", "http://localhost:81"),
			PreviewSize: previewSize,
		},
	}

	log.Printf("Config loaded: env=%s, port=%s", cfg.Server.Env, cfg.Server.Port)
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt parses key as an integer of at least minVal. Malformed or
// out-of-range values fall back to defaultVal with a warning.
func getEnvInt(key string, defaultVal, minVal int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < minVal {
		log.Printf("Invalid %s=%q, using default %d", key, raw, defaultVal)
		return defaultVal
	}
	return v
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
