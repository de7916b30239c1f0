package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port           string
	Store          string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	SessionTTL     time.Duration
	RequestTimeout time.Duration
	AdminEmails    AllowList
	CORSOrigin     string
	LogLevel       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTP  SMTPConfig
	Minio MinioConfig
}

type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	Recipient string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Load reads .env (when present) and the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:          valueOrDefault("PORT", "8080"),
		Store:         strings.ToLower(valueOrDefault("STORE", StoreMongo)),
		MongoURI:      valueOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       valueOrDefault("MONGO_DB", "asksolve"),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		AdminEmails:   ParseAllowList(os.Getenv("ADMIN_EMAILS")),
		CORSOrigin:    valueOrDefault("CORS_ORIGIN", "*"),
		LogLevel:      valueOrDefault("LOG_LEVEL", "info"),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword: strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		SMTP: SMTPConfig{
			Host:      valueOrDefault("SMTP_HOST", "smtp.gmail.com"),
			Port:      valueOrDefault("SMTP_PORT", "587"),
			Username:  strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
			Password:  strings.TrimSpace(os.Getenv("SMTP_PASSWORD")),
			FromEmail: valueOrDefault("SMTP_FROM_EMAIL", "noreply@asksolve.local"),
			Recipient: valueOrDefault("CONTACT_RECIPIENT", "pmsaaskandsolve@gmail.com"),
		},
		Minio: MinioConfig{
			Endpoint:  strings.TrimSpace(os.Getenv("MINIO_ENDPOINT")),
			AccessKey: valueOrDefault("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: valueOrDefault("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    valueOrDefault("MINIO_BUCKET", "asksolve-exports"),
		},
	}

	var err error
	if cfg.SessionTTL, err = durationOrDefault("SESSION_TTL", 4*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout, err = durationOrDefault("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if raw := strings.TrimSpace(os.Getenv("REDIS_DB")); raw != "" {
		if cfg.RedisDB, err = strconv.Atoi(raw); err != nil {
			return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
	}
	if raw := strings.TrimSpace(os.Getenv("MINIO_USE_SSL")); raw != "" {
		if cfg.Minio.UseSSL, err = strconv.ParseBool(raw); err != nil {
			return Config{}, fmt.Errorf("invalid MINIO_USE_SSL: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreMongo:
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

func valueOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func durationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
