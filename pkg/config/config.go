package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
}

// Load reads environment variables, optionally from a .env file if present.
// JWTSecret intentionally has no default: a signing secret baked into the
// binary is a deployment hazard, so main refuses to start without one.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTIssuer:     getEnv("JWT_ISSUER", "fundwatch"),
		JWTTTLMinutes: getEnvInt("JWT_TTL_MINUTES", 7*24*60),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
