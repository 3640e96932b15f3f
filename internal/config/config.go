package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	// Redis rate limiter (optional, limiter falls back to in-memory)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow int // seconds

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment. DATABASE_URL wins; otherwise
// the URL is composed from DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD.
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		host := envOr("DB_HOST", "127.0.0.1")
		port := envOr("DB_PORT", "5432")
		name := envOr("DB_NAME", "default_db")
		user := envOr("DB_USER", "default_user")
		pass := envOr("DB_PASSWORD", "default_password")
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, pass, host, port, name)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	apiRateLimit := 120 // max requests per ->
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60 // -> 60 seconds
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		APIRateLimit:  apiRateLimit,
		APIRateWindow: apiRateWindow,
		LogLevel:      envOr("LOG_LEVEL", "info"),
		LogJSON:       os.Getenv("LOG_JSON") == "true",
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
