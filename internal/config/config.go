package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port               string
	DBConn             string
	LogLevel           string
	JWTSecret          string
	FrontendURL        string
	AllowedOrigins     string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	SenderEmail        string
}

// NewConfig loads configuration from environment variables.
// JWT_SECRET and DB_CONN have no defaults: the service must not start without them.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "5050"),
		DBConn:             os.Getenv("DB_CONN"),
		LogLevel:           getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  getEnv("GOOGLE_CALLBACK_URL", "http://localhost:5050/auth/google/callback"),
		SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           getEnv("SMTP_PORT", "587"),
		SMTPUsername:       os.Getenv("SMTP_USERNAME"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SenderEmail:        getEnv("SENDER_EMAIL", "noreply@dailyaura.app"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
