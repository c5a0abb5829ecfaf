package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Providers ProvidersConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Valuation ValuationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Host string
}

// ProvidersConfig holds the static endpoints and credentials of the
// external market data providers. Read-only after startup.
type ProvidersConfig struct {
	AlphaVantageURL string
	AlphaVantageKey string
	AMFIURL         string
	GoldAPIURL      string
	GoldAPIToken    string
	Timeout         time.Duration
}

// RedisConfig holds the provider response cache configuration. Caching is
// disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
}

// KafkaConfig holds Kafka configuration. Event publishing is disabled when
// no brokers are configured.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// ValuationConfig tunes the aggregation pipeline
type ValuationConfig struct {
	Workers      int
	EquityPolicy string
	GoldPolicy   string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Providers: ProvidersConfig{
			AlphaVantageURL: getEnv("ALPHA_VANTAGE_URL", "https://www.alphavantage.co/query"),
			AlphaVantageKey: getEnv("ALPHA_VANTAGE_API_KEY", ""),
			AMFIURL:         getEnv("AMFI_NAV_URL", "https://www.amfiindia.com/spages/NAVAll.txt"),
			GoldAPIURL:      getEnv("GOLD_API_URL", "https://www.goldapi.io/api"),
			GoldAPIToken:    getEnv("GOLD_API_TOKEN", ""),
			Timeout:         time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:   getEnv("KAFKA_TOPIC", "valuation-events"),
		},
		Valuation: ValuationConfig{
			Workers:      getEnvInt("VALUATION_WORKERS", 4),
			EquityPolicy: getEnv("EQUITY_FALLBACK_POLICY", "synthetic"),
			GoldPolicy:   getEnv("GOLD_FALLBACK_POLICY", "synthetic"),
		},
	}
}

// Addr returns the listen address for the HTTP server
func (s *ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
