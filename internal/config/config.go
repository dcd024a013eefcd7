package config

import (
	"os"
	"strconv"

	"ledger_service/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string

	// Optional service auth: when the secret is empty the API is open
	AuthJWTSecret string

	// Redis for the rate limiter; empty addr disables limiting
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// API rate limiting
	APIRateLimit  int
	APIRateWindow int // seconds

	// Default number of trailing weeks in the analysis report
	AnalyticsWeeks int
}

// Load reads configuration from the environment (.env supported)
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
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

	apiRateLimit := 10
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := 60
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = n
		}
	}

	analyticsWeeks := 52
	if v := os.Getenv("ANALYTICS_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			analyticsWeeks = n
		}
	}

	return &Config{
		AppPort:        port,
		DatabaseURL:    dbURL,
		AuthJWTSecret:  os.Getenv("AUTH_JWT_SECRET"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        redisDB,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		LogJSON:        os.Getenv("LOG_JSON") == "true",
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  apiRateWindow,
		AnalyticsWeeks: analyticsWeeks,
	}
}
