package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret        string
	TokenTTLHours    int
	StripeSecretKey  string
	AdminEmail       string
	AdminName        string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	CatalogCacheTTL  time.Duration
	AllowedOrigins   []string
	OTELEndpoint     string
	WorkerHealthPort int
}

func Load() Config {
	// Best effort; the process environment wins over .env values.
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 5000)

	return Config{
		Env:              env,
		Port:             port,
		DBURL:            buildDBURL(),
		JWTSecret:        getEnv("ACCESS_TOKEN_SECRET", ""),
		TokenTTLHours:    getEnvInt("ACCESS_TOKEN_TTL_HOURS", 24),
		StripeSecretKey:  getEnv("STRIPE_SECRET_KEY", ""),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		AdminName:        getEnv("ADMIN_NAME", "Shop Admin"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		CatalogCacheTTL:  time.Duration(getEnvInt("CATALOG_CACHE_TTL_SECONDS", 30)) * time.Second,
		AllowedOrigins:   splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		OTELEndpoint:     getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		WorkerHealthPort: getEnvInt("WORKER_HEALTH_PORT", 8081),
	}
}

func buildDBURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "partshub")
	pass := getEnv("DB_PASSWORD", "partshub")
	name := getEnv("DB_NAME", "partshub")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")

	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
