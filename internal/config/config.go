package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string
	JWTTTL      time.Duration
	CORSOrigin  string
	LogLevel    string
	LogFormat   string
	// Redis - empty disables token revocation
	RedisURL string
	// Orphan vote cleanup, zero disables the janitor
	JanitorInterval time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Addr:            getenv("API_ADDR", ":8080"),
		DatabaseURL:     getenv("DATABASE_URL", "sqlite://./data/forkful.db"),
		JWTSecret:       getenv("JWT_SECRET", "forkful-dev-secret"),
		JWTTTL:          time.Duration(getenvInt("JWT_TTL_SECONDS", 604800)) * time.Second,
		CORSOrigin:      getenv("CORS_ORIGIN", "*"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LogFormat:       getenv("LOG_FORMAT", "text"),
		RedisURL:        getenv("REDIS_URL", ""),
		JanitorInterval: time.Duration(getenvInt("JANITOR_INTERVAL_SECONDS", 3600)) * time.Second,
		ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
