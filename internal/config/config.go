package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port string
	Mode string

	// Database configuration
	DatabaseURL string

	// Redis configuration
	RedisURL string

	// Auth configuration
	JWTSecret     string
	TokenTTLHours int

	// Ethereum configuration
	EthereumRPCURL string

	// Subscription configuration
	SubscriptionDays int

	// Brevo email configuration
	BrevoAPIKey    string
	BrevoFromEmail string
	BrevoFromName  string

	// Rate limiting for payment submission
	PaymentRateLimitSeconds int

	// Metrics endpoint credentials
	MetricsUser     string
	MetricsPassword string

	ServiceName string
}

var AppConfig *Config

func InitConfig() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	AppConfig = &Config{
		Port:                    getEnv("PORT", "8080"),
		Mode:                    getEnv("GIN_MODE", "debug"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		RedisURL:                getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:               getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLHours:           getEnvInt("TOKEN_TTL_HOURS", 24),
		EthereumRPCURL:          getEnv("ETHEREUM_RPC_URL", "https://mainnet.infura.io/v3/your-infura-key"),
		SubscriptionDays:        getEnvInt("SUBSCRIPTION_DAYS", 30),
		BrevoAPIKey:             getEnv("BREVO_API_KEY", ""),
		BrevoFromEmail:          getEnv("BREVO_FROM_EMAIL", ""),
		BrevoFromName:           getEnv("BREVO_FROM_NAME", "CreatorHub"),
		PaymentRateLimitSeconds: getEnvInt("PAYMENT_RATE_LIMIT_SECONDS", 15),
		MetricsUser:             getEnv("METRICS_USER", ""),
		MetricsPassword:         getEnv("METRICS_PASSWORD", ""),
		ServiceName:             getEnv("SERVICE_NAME", "CreatorHub API"),
	}

	return nil
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
