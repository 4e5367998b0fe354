package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	// Pushover provider
	PushoverAppToken string
	PushoverUserKey  string
	PushoverDevice   string
	PushoverBaseURL  string

	// Outbound HTTP
	HTTPTimeout time.Duration

	// Inbound rate limiting
	RateLimitEnabled bool
	RateLimitRPS     int
	RateLimitBurst   int

	// Server
	ServerShutdownTimeoutSeconds int

	// CORS
	CORSAllowedOrigins string

	// Logging
	LogLevel  string
	LogFormat string
}

var AppConfig *Config

func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),

		// Pushover
		PushoverAppToken: getEnvOrDefault("PUSHOVER_APP_TOKEN", ""),
		PushoverUserKey:  getEnvOrDefault("PUSHOVER_USER_KEY", ""),
		PushoverDevice:   getEnvOrDefault("PUSHOVER_DEVICE", ""),
		PushoverBaseURL:  getEnvOrDefault("PUSHOVER_BASE_URL", "https://api.pushover.net/1"),

		// Outbound HTTP
		HTTPTimeout: getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Inbound rate limiting
		RateLimitEnabled: getEnvOrDefault("RATE_LIMIT_ENABLED", "true") == "true",
		RateLimitRPS:     getEnvAsInt("RATE_LIMIT_RPS", 10),
		RateLimitBurst:   getEnvAsInt("RATE_LIMIT_BURST", 20),

		// Server
		ServerShutdownTimeoutSeconds: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT_SECONDS", 30),

		// CORS
		CORSAllowedOrigins: getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"),

		// Logging
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "debug"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "text"),
	}

	// The provider credentials are the only fatal startup condition: without
	// them every dispatch would fail.
	if AppConfig.PushoverAppToken == "" || AppConfig.PushoverUserKey == "" {
		log.Fatal("PUSHOVER_APP_TOKEN and PUSHOVER_USER_KEY must be set")
	}

	if AppConfig.PushoverDevice == "" {
		log.Println("No default device configured, notifications go to all of the user's devices")
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as time.Duration, using default %v: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		} else {
			log.Printf("Warning: Failed to parse environment variable %s='%s' as int, using default %d: %v", key, value, defaultValue, err)
		}
	}
	return defaultValue
}
