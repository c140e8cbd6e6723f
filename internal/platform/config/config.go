// Package config builds process configuration from environment variables so
// main stays lean. A .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates everything the process needs at startup.
type Config struct {
	Server   Server
	App      Application
	Database Database
	Email    Email
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// Application captures settings of the service itself.
type Application struct {
	// BaseURL is the public address used when building confirmation links.
	BaseURL string
}

// Database captures connection parameters for PostgreSQL.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// URL renders the connection string for pgx and the migration runner.
func (d Database) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// Email captures settings for the transactional-email provider.
type Email struct {
	BaseURL   string
	Sender    string
	AuthToken string
	Timeout   time.Duration
}

// Load reads configuration from the environment, applying defaults suitable
// for local development. Production deployments override via real env vars.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Server: Server{
			Addr:            getEnv("BULLETIN_ADDR", ":8080"),
			LogLevel:        getEnv("BULLETIN_LOG_LEVEL", "info"),
			ShutdownTimeout: getDurationEnv("BULLETIN_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		App: Application{
			BaseURL: getEnv("BULLETIN_BASE_URL", "http://127.0.0.1:8080"),
		},
		Database: Database{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			Name:     getEnv("DB_NAME", "bulletin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Email: Email{
			BaseURL:   getEnv("EMAIL_BASE_URL", "https://api.postmarkapp.com"),
			Sender:    getEnv("EMAIL_SENDER", "newsletter@example.com"),
			AuthToken: getEnv("EMAIL_AUTH_TOKEN", ""),
			Timeout:   getDurationEnv("EMAIL_TIMEOUT", 10*time.Second),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
