package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the reco-ai-demo server.
type Config struct {
	Server          ServerConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	AI              AIConfig
	Mail            MailConfig
	Auth            AuthConfig
	Currency        string
	RateLimitPerMin int
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL string
}

type AIConfig struct {
	Provider string
	Timeout  time.Duration
	OpenAI   OpenAIConfig
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

// MailConfig configures the SMTP transport for result notifications.
// An empty Host disables the mail feature entirely.
type MailConfig struct {
	Host            string
	Port            int
	Username        string
	Password        string
	Secure          bool
	From            string
	DefaultReceiver string
}

// AuthConfig holds the optional API key. KeyHash is a bcrypt hash; when
// empty the API is public, matching the original demo deployment.
type AuthConfig struct {
	KeyHash string
}

var validProviders = map[string]bool{
	"openai": true,
	"mock":   true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("RECO_PORT", 8080),
			Env:  envString("RECO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		AI: AIConfig{
			Provider: envString("AI_PROVIDER", "openai"),
			Timeout:  envDurationSecs("AI_TIMEOUT_SECS", 120*time.Second),
			OpenAI: OpenAIConfig{
				APIKey: os.Getenv("OPENAI_API_KEY"),
				Model:  envString("OPENAI_MODEL", "gpt-4o-mini"),
			},
		},
		Mail: MailConfig{
			Host:            os.Getenv("SMTP_HOST"),
			Port:            envInt("SMTP_PORT", 587),
			Username:        os.Getenv("SMTP_USER"),
			Password:        os.Getenv("SMTP_PASS"),
			Secure:          os.Getenv("SMTP_SECURE") == "1",
			From:            envString("FROM_EMAIL", os.Getenv("SMTP_USER")),
			DefaultReceiver: os.Getenv("DEFAULT_RECEIVER"),
		},
		Auth: AuthConfig{
			KeyHash: os.Getenv("RECO_API_KEY_HASH"),
		},
		Currency:        envString("CURRENCY", "NOK"),
		RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 60),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if !validProviders[c.AI.Provider] {
		return fmt.Errorf("AI_PROVIDER must be one of openai, mock; got %q", c.AI.Provider)
	}
	if c.AI.Provider == "openai" && c.AI.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER is openai")
	}

	if c.Mail.Host != "" && c.Mail.From == "" {
		return fmt.Errorf("FROM_EMAIL (or SMTP_USER) is required when SMTP_HOST is set")
	}

	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
