package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// PlaceholderCSRFSecret is the documented weak-mode secret used when
// CSRF_SECRET is not set. It is rejected outright in production.
const PlaceholderCSRFSecret = "CAMBIAR_ESTE_VALOR_SECRETO_EN_PRODUCCION"

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	CSRF     CSRFConfig
}

type ServerConfig struct {
	Port           string
	Environment    string
	FrontendOrigin string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	SessionTTL       time.Duration
	CaptchaTTL       time.Duration
	CaptchaStore     string // "memory" or "redis"
	CaptchaCapacity  int
	LoginMaxAttempts int
	LoginWindow      time.Duration
}

type CSRFConfig struct {
	Secret string
}

func Load() (*Config, error) {
	// .env is optional in production
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "3000"),
			Environment:    getEnv("ENVIRONMENT", "development"),
			FrontendOrigin: getEnv("FRONTEND_ORIGIN", "http://localhost:8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "clientes"),
			Password: getEnv("DB_PASSWORD", "clientes"),
			DBName:   getEnv("DB_NAME", "erpgrupo4"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			SessionTTL:       getDurationEnv("AUTH_SESSION_TTL", 2*time.Hour),
			CaptchaTTL:       getDurationEnv("AUTH_CAPTCHA_TTL", 5*time.Minute),
			CaptchaStore:     getEnv("AUTH_CAPTCHA_STORE", "memory"),
			CaptchaCapacity:  getIntEnv("AUTH_CAPTCHA_CAPACITY", 10000),
			LoginMaxAttempts: getIntEnv("AUTH_LOGIN_MAX_ATTEMPTS", 5),
			LoginWindow:      getDurationEnv("AUTH_LOGIN_WINDOW", 15*time.Minute),
		},
		CSRF: CSRFConfig{
			Secret: getEnv("CSRF_SECRET", PlaceholderCSRFSecret),
		},
	}

	// The placeholder secret silently weakens CSRF protection; refuse to
	// start with it outside development.
	if cfg.Server.Environment == "production" && cfg.CSRF.Secret == PlaceholderCSRFSecret {
		return nil, fmt.Errorf("CSRF_SECRET must be set to a strong value in production")
	}

	return cfg, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
