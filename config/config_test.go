package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/tatva")
	t.Setenv("JWT_SECRET", "s3cret")
	for _, k := range []string{"PORT", "JWT_TTL", "ADMIN_EMAIL", "ADMIN_PASSWORD", "CORS_ORIGINS",
		"NORMALIZE_DELAY", "PO_CREATE_DELAY", "MAX_UPLOAD_MB", "GEMINI_API_KEY", "GEMINI_MODEL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "postgres://localhost/tatva", cfg.DatabaseURL)
	require.Equal(t, 7*24*time.Hour, cfg.JWTTTL)
	require.Equal(t, "admin@tatvadirect.com", cfg.AdminEmail)
	require.Equal(t, []string{"*"}, cfg.CORSOrigins)
	require.Equal(t, 1500*time.Millisecond, cfg.NormalizeDelay)
	require.Equal(t, time.Second, cfg.POCreateDelay)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	require.Empty(t, cfg.GeminiAPIKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db/tatva")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("NORMALIZE_DELAY", "0s")
	t.Setenv("PO_CREATE_DELAY", "soon")
	t.Setenv("MAX_UPLOAD_MB", "-4")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 2*time.Hour, cfg.JWTTTL)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	require.Zero(t, cfg.NormalizeDelay)
	require.Equal(t, time.Second, cfg.POCreateDelay)
	require.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}
