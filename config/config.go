package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port               string
	DatabaseURL        string
	GoEnv              string
	JWTSecret          string
	JWTExpiresInHours  int
	FrontendURL        string
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioPhoneNumber  string
	TwilioWhatsAppFrom string
}

// Load reads configuration from environment variables, optionally seeded from a
// .env file. In production the platform sets env vars directly, so a missing
// .env file is not an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		GoEnv:              getEnv("GO_ENV", "development"),
		JWTSecret:          getEnv("JWT_SECRET", "fallback_secret"),
		JWTExpiresInHours:  getEnvInt("JWT_EXPIRES_IN", 24),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber:  getEnv("TWILIO_PHONE_NUMBER", ""),
		TwilioWhatsAppFrom: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
