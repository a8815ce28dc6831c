package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	// MongoDB
	MongoURL        string
	DatabaseName    string
	StoreTimeout    time.Duration
	UseTransactions bool

	// Tokens
	JWTSecret     string
	JWTExpiration time.Duration

	// Payments
	StripeSecretKey string
	Currency        string

	// HTTP
	AllowedOrigins    []string
	RateLimitRequests int
	RateLimitWindow   time.Duration

	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	mongoURL := getEnv("MONGO_URL", "")
	if mongoURL == "" {
		mongoURL = getEnv("MONGO_PUBLIC_URL", "mongodb://localhost:27017")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "5000"),

		MongoURL:        mongoURL,
		DatabaseName:    getEnv("DB_NAME", "storefront"),
		StoreTimeout:    getEnvAsSeconds("STORE_TIMEOUT", 10),
		UseTransactions: getEnvAsBool("MONGO_TRANSACTIONS", false),

		JWTSecret:     getEnv("JWT_SECRET", ""),
		JWTExpiration: getEnvAsSeconds("JWT_EXPIRATION", 60*60),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		Currency:        strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),

		AllowedOrigins:    getEnvAsStringSlice("ALLOWED_ORIGINS", nil),
		RateLimitRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:   getEnvAsSeconds("RATE_LIMIT_WINDOW", 60),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.MongoURL == "" {
		return fmt.Errorf("mongo URL is required")
	}
	if c.DatabaseName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.JWTExpiration <= 0 {
		return fmt.Errorf("JWT expiration must be positive")
	}

	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	return nil
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// String returns a representation that is safe to log.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %s, Database: %s, Transactions: %t}",
		c.Environment, c.Port, c.DatabaseName, c.UseTransactions)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsStringSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
