package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil {
			if os.IsNotExist(err) {
				log.Println("Warning: .env file not found, using system environment variables")
				return nil
			}
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	GO_ENV string
	PORT   int
	// Database Configuration
	DATABASE_URL         string
	DB_USER_NAME         string
	DB_PASSWORD          string
	DB_NAME              string
	DB_HOST              string
	DB_PORT              string
	DB_SSL_MODE          string
	DB_MAX_OPEN_CONNS    int
	DB_MAX_IDLE_CONNS    int
	DB_CONN_MAX_LIFETIME time.Duration
	// Redis Configuration
	REDIS_URL string
	// HTTP Configuration
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	RATE_LIMIT_WINDOW   time.Duration
	UPLOAD_MAX_BYTES    int
	// Logging
	LOG_LEVEL string
	LOG_FILE  string
	// DigitalOcean Spaces (CSV import archive)
	DO_SPACES_KEY      string
	DO_SPACES_SECRET   string
	DO_SPACES_BUCKET   string
	DO_SPACES_REGION   string
	DO_SPACES_ENDPOINT string
	DO_SPACES_CDN_URL  string
}

func Get() (*EnviornmentVariable, error) {
	envVariables := &EnviornmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   intOr("PORT", 8080),
		// Database
		DATABASE_URL:         os.Getenv("DATABASE_URL"),
		DB_USER_NAME:         os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:          os.Getenv("DB_PASSWORD"),
		DB_NAME:              os.Getenv("DB_NAME"),
		DB_HOST:              stringOr("DB_HOST", "localhost"),
		DB_PORT:              stringOr("DB_PORT", "5432"),
		DB_SSL_MODE:          stringOr("DB_SSL_MODE", "disable"),
		DB_MAX_OPEN_CONNS:    intOr("DB_MAX_OPEN_CONNS", 25),
		DB_MAX_IDLE_CONNS:    intOr("DB_MAX_IDLE_CONNS", 5),
		DB_CONN_MAX_LIFETIME: durationOr("DB_CONN_MAX_LIFETIME", time.Hour),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// HTTP
		ALLOWED_ORIGINS:     stringOr("ALLOWED_ORIGINS", "http://localhost:3000"),
		RATE_LIMIT_REQUESTS: intOr("RATE_LIMIT_REQUESTS", 100),
		RATE_LIMIT_WINDOW:   durationOr("RATE_LIMIT_WINDOW", time.Minute),
		UPLOAD_MAX_BYTES:    intOr("UPLOAD_MAX_BYTES", 10*1024*1024),
		// Logging
		LOG_LEVEL: stringOr("LOG_LEVEL", "info"),
		LOG_FILE:  os.Getenv("LOG_FILE"),
		// DigitalOcean
		DO_SPACES_KEY:      os.Getenv("DO_SPACES_KEY"),
		DO_SPACES_SECRET:   os.Getenv("DO_SPACES_SECRET"),
		DO_SPACES_BUCKET:   os.Getenv("DO_SPACES_BUCKET"),
		DO_SPACES_REGION:   os.Getenv("DO_SPACES_REGION"),
		DO_SPACES_ENDPOINT: os.Getenv("DO_SPACES_ENDPOINT"),
		DO_SPACES_CDN_URL:  os.Getenv("DO_SPACES_CDN_URL"),
	}

	return envVariables, nil
}

// SpacesEnabled reports whether every setting needed to archive uploads is present.
func (e *EnviornmentVariable) SpacesEnabled() bool {
	return e.DO_SPACES_KEY != "" && e.DO_SPACES_SECRET != "" &&
		e.DO_SPACES_BUCKET != "" && e.DO_SPACES_ENDPOINT != ""
}

func stringOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
