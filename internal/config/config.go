package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration, sourced from the environment.
type Config struct {
	AppName string
	Port    string

	// Either DatabaseURL or the discrete DB_* parameters.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	JWTSecret                string
	AccessTokenExpireMinutes int

	StripeAPIKey        string
	StripeWebhookSecret string

	// Queue backend identifier for the live-update channel. Accepted for
	// deployment parity; the hub is per-process and does not consume it.
	WSMessageQueue string
}

// Load reads configuration from the environment, with an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:                  getenv("APP_NAME", "Inventory Management System"),
		Port:                     getenv("PORT", "8005"),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		DBHost:                   getenv("DB_HOST", "localhost"),
		DBPort:                   getenv("DB_PORT", "5432"),
		DBUser:                   getenv("DB_USER", "postgres"),
		DBPassword:               os.Getenv("DB_PASSWORD"),
		DBName:                   getenv("DB_NAME", "inventory"),
		JWTSecret:                getenv("JWT_SECRET", "change-me-in-production"),
		AccessTokenExpireMinutes: getenvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60),
		StripeAPIKey:             os.Getenv("STRIPE_API_KEY"),
		StripeWebhookSecret:      os.Getenv("STRIPE_WEBHOOK_SECRET"),
		WSMessageQueue:           os.Getenv("WS_MESSAGE_QUEUE"),
	}
}

// DSN assembles the postgres connection string.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
