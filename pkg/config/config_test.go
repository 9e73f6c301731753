package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_ISSUER", "")
	t.Setenv("JWT_TTL_MINUTES", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "fundwatch", cfg.JWTIssuer)
	assert.Equal(t, 7*24*60, cfg.JWTTTLMinutes)
	// No fallback secret: main must refuse to start.
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "other")
	t.Setenv("JWT_TTL_MINUTES", "15")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "other", cfg.JWTIssuer)
	assert.Equal(t, 15, cfg.JWTTTLMinutes)
}

func TestLoad_BadTTLFallsBack(t *testing.T) {
	t.Setenv("JWT_TTL_MINUTES", "not-a-number")

	cfg := Load()
	assert.Equal(t, 7*24*60, cfg.JWTTTLMinutes)
}
