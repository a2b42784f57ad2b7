package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT        string
	DB_URL      string
	JWT_SECRET  string
	APP_URL     string
	CORS_ORIGIN string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	MUX_TOKEN_ID            string
	MUX_TOKEN_SECRET        string
	MUX_WEBHOOK_SECRET      string
	MUX_SIGNING_KEY_ID      string
	MUX_SIGNING_PRIVATE_KEY string

	AWS_REGION string
	S3_BUCKET  string
	SES_FROM   string

	MODULE_UNLOCK_POLICY string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")
	APP_URL = getEnv("APP_URL", "http://localhost:3000")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")

	GOOGLE_CLIENT_ID = mustEnv("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	MUX_TOKEN_ID = getEnv("MUX_TOKEN_ID", "")
	MUX_TOKEN_SECRET = getEnv("MUX_TOKEN_SECRET", "")
	MUX_WEBHOOK_SECRET = getEnv("MUX_WEBHOOK_SECRET", "")
	MUX_SIGNING_KEY_ID = getEnv("MUX_SIGNING_KEY_ID", "")
	MUX_SIGNING_PRIVATE_KEY = getEnv("MUX_SIGNING_PRIVATE_KEY", "")

	AWS_REGION = getEnv("AWS_REGION", "eu-central-1")
	S3_BUCKET = getEnv("S3_BUCKET", "")
	SES_FROM = getEnv("SES_FROM", "")

	// "open" or "sequential"
	MODULE_UNLOCK_POLICY = getEnv("MODULE_UNLOCK_POLICY", "open")
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
