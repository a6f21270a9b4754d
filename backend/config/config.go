// backend/config/config.go
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config struct holds all configuration for the application
type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	CORSOrigins string
}

var AppConfig *Config

// LoadConfig loads config from .env file
func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	AppConfig = &Config{
		DatabaseURL: getenv("DATABASE_URL", "reportes.db"),
		JWTSecret:   getenv("JWT_SECRET", "your-secret-key-here-change-in-production"),
		Port:        getenv("PORT", "8080"),
		CORSOrigins: getenv("CORS_ORIGINS", "*"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
