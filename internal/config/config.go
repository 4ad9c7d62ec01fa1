package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	CORSOrigins string
	TablePrefix string
	// JWTSecret signs session tokens (HS256). Must be set outside dev.
	JWTSecret string
	// TokenTTLHours bounds session token lifetime.
	TokenTTLHours int
	// LogDir enables file logging when non-empty.
	LogDir string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   env,
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:   getTablePrefix(env),
		JWTSecret:     getEnv("JWT_SECRET", defaultSecret(env)),
		TokenTTLHours: getEnvInt("TOKEN_TTL_HOURS", 24*7),
		LogDir:        getEnv("LOG_DIR", ""),
	}
}

// defaultSecret only exists so dev environments work out of the box.
// Outside dev an empty default forces explicit configuration.
func defaultSecret(env string) string {
	if env == "dev" {
		return "dev-only-secret"
	}
	return ""
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
