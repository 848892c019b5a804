package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	APP_URL     string
	CORS_ORIGIN string

	STRIPE_SECRET_KEY string

	LOG_LEVEL  string
	LOG_FORMAT string

	GOOGLE_CLIENT_ID     string
	GOOGLE_CLIENT_SECRET string
	GOOGLE_REDIRECT_URL  string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	APP_URL = getEnv("APP_URL", "http://localhost:5173")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	STRIPE_SECRET_KEY = mustEnv("STRIPE_SECRET_KEY")

	LOG_LEVEL = getEnv("LOG_LEVEL", "info")
	LOG_FORMAT = getEnv("LOG_FORMAT", "json")

	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
