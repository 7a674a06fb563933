package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	OpenRouter OpenRouterConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type OpenRouterConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	SiteURL  string
	SiteName string
	Timeout  time.Duration
}

// Validate checks the fields the gateway cannot run without. Missing
// credentials are a startup failure, never a per-request one.
func (c OpenRouterConfig) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("OPEN_ROUTER_API_KEY is not set")
	}
	if c.Model == "" {
		return fmt.Errorf("OPEN_ROUTER_MODEL is not set")
	}
	return nil
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:4321"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:4321"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "10x Cards"),
		},
		OpenRouter: OpenRouterConfig{
			APIKey:   getEnv("OPEN_ROUTER_API_KEY", ""),
			Model:    getEnv("OPEN_ROUTER_MODEL", ""),
			BaseURL:  getEnv("OPEN_ROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
			SiteURL:  getEnv("SITE_URL", "localhost"),
			SiteName: getEnv("SITE_NAME", "10x-cards"),
			Timeout:  time.Duration(getEnvAsInt("OPEN_ROUTER_TIMEOUT_SECONDS", 60)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
