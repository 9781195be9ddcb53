package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"todo_webapp/internal/logger"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var defaultAllowedOrigins = []string{
	"https://to-do-web-jbg1w37iq-madhavs-projects-5084c691.vercel.app",
	"http://localhost:3000",
}

type Config struct {
	AppPort     string
	AppVersion  string
	DBDriver    string
	DatabaseURL string

	LogLevel string
	LogJSON  bool

	// Cross-origin allow-list for /api/**
	AllowedOrigins []string
	CORSMaxAge     time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIRateLimit  int
	APIRateWindow time.Duration

	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, after loading .env if present.
func Load() *Config {
	_ = godotenv.Load()

	driver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if driver == "" {
		driver = DriverPostgres
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		logger.Fatal("unsupported DB_DRIVER", "driver", driver)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		if driver == DriverPostgres {
			logger.Fatal("DATABASE_URL is not set")
		}
		dbURL = "todo.db"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	version := os.Getenv("APP_VERSION")
	if version == "" {
		version = "dev"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:         port,
		AppVersion:      version,
		DBDriver:        driver,
		DatabaseURL:     dbURL,
		LogLevel:        logLevel,
		LogJSON:         os.Getenv("LOG_JSON") == "true",
		AllowedOrigins:  parseList(os.Getenv("CORS_ALLOWED_ORIGINS"), defaultAllowedOrigins),
		CORSMaxAge:      time.Duration(intEnv("CORS_MAX_AGE_SECONDS", 3600)) * time.Second,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         intEnv("REDIS_DB", 0),
		APIRateLimit:    intEnv("API_RATE_LIMIT", 100),
		APIRateWindow:   time.Duration(intEnv("API_RATE_WINDOW_SECONDS", 60)) * time.Second,
		ShutdownTimeout: time.Duration(intEnv("SHUTDOWN_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

// intEnv returns the positive integer in key, or def when unset or invalid.
// REDIS_DB is the one value where zero is meaningful, so it is accepted too.
func intEnv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || (n == 0 && key != "REDIS_DB") {
		return def
	}
	return n
}

// parseList splits a comma separated env value. Empty entries are dropped.
func parseList(raw string, def []string) []string {
	if strings.TrimSpace(raw) == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
