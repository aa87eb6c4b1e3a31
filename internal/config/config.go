package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment-driven configuration.
type Config struct {
	Addr     string
	AppEnv   string
	LogLevel string

	// DatabaseURL selects the Postgres-backed product and user stores.
	// When empty the app falls back to in-memory repositories.
	DatabaseURL string

	RedisAddr       string
	ProductCacheTTL time.Duration

	JWTSecret   string
	JWTTTL      time.Duration
	// AdminEmails may sign in for catalog writes.
	AdminEmails []string

	ImagesDir         string
	SeedDefaultCart   bool
	ExpandConcurrency int
}

// Load reads a .env file when present and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:              getEnv("SHOP_ADDR", ":3000"),
		AppEnv:            getEnv("APP_ENV", "dev"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		ProductCacheTTL:   time.Duration(getEnvInt("PRODUCT_CACHE_TTL_SECONDS", 300)) * time.Second,
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTTTL:            time.Duration(getEnvInt("JWT_TTL_HOURS", 72)) * time.Hour,
		AdminEmails:       getEnvList("ADMIN_EMAILS"),
		ImagesDir:         getEnv("IMAGES_DIR", "./images"),
		SeedDefaultCart:   getEnvBool("SEED_DEFAULT_CART", true),
		ExpandConcurrency: getEnvInt("EXPAND_CONCURRENCY", 8),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvList splits a comma-separated value, dropping blanks.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
