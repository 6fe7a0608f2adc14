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
	Port          string
	DatabaseURL   string
	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string
	CORSOrigins   []string
	// Artificial latency of the mock normalization and PO endpoints.
	NormalizeDelay time.Duration
	POCreateDelay  time.Duration
	MaxUploadBytes int64
	GeminiAPIKey   string
	GeminiModel    string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:           get("PORT", "5000"),
		DatabaseURL:    must("DATABASE_URL"),
		JWTSecret:      must("JWT_SECRET"),
		JWTTTL:         duration("JWT_TTL", 7*24*time.Hour),
		AdminEmail:     get("ADMIN_EMAIL", "admin@tatvadirect.com"),
		AdminPassword:  get("ADMIN_PASSWORD", "TatvaAdmin@2024"),
		CORSOrigins:    list("CORS_ORIGINS", "*"),
		NormalizeDelay: duration("NORMALIZE_DELAY", 1500*time.Millisecond),
		POCreateDelay:  duration("PO_CREATE_DELAY", time.Second),
		MaxUploadBytes: int64(integer("MAX_UPLOAD_MB", 10)) << 20,
		GeminiAPIKey:   get("GEMINI_API_KEY", ""),
		GeminiModel:    get("GEMINI_MODEL", "gemini-2.5-flash"),
	}
	return cfg
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env: %s", k)
	}
	return v
}

func duration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", k, v, def)
		return def
	}
	return d
}

func integer(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", k, v, def)
		return def
	}
	return n
}

func list(k, def string) []string {
	raw := get(k, def)
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
