// Package config loads application configuration from a YAML file and
// environment variables (FORAMA_ prefix, underscores as separators).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "FORAMA_"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Log        LogConfig        `koanf:"log"`
	CORS       CORSConfig       `koanf:"cors"`
	Newsletter NewsletterConfig `koanf:"newsletter"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              string        `koanf:"port"`
	MetricsPort       string        `koanf:"metrics_port"`
	ReadTimeout       time.Duration `koanf:"read_timeout"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	WriteTimeout      time.Duration `koanf:"write_timeout"`
	IdleTimeout       time.Duration `koanf:"idle_timeout"`
}

// DatabaseConfig contains PostgreSQL settings.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnectTimeout  time.Duration `koanf:"connect_timeout"`
	ConnectAttempts int           `koanf:"connect_attempts"`
	Migrate         bool          `koanf:"migrate"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or text
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// NewsletterConfig contains newsletter dispatch settings.
type NewsletterConfig struct {
	AdminToken string        `koanf:"admin_token"`
	BaseURL    string        `koanf:"base_url"` // overrides request origin when set
	BatchSize  int           `koanf:"batch_size"`
	BatchDelay time.Duration `koanf:"batch_delay"`
	Email      EmailConfig   `koanf:"email"`
}

// EmailConfig contains SMTP settings for outbound email.
type EmailConfig struct {
	Enabled          bool   `koanf:"enabled"`
	SMTPHost         string `koanf:"smtp_host"`
	SMTPPort         int    `koanf:"smtp_port"`
	SMTPUser         string `koanf:"smtp_user"`
	SMTPPassword     string `koanf:"smtp_password"`
	WelcomeFrom      string `koanf:"welcome_from"`
	NotificationFrom string `koanf:"notification_from"`
	ReplyTo          string `koanf:"reply_to"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              "8080",
			MetricsPort:       "9090",
			ReadTimeout:       15 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      5 * time.Minute,
			IdleTimeout:       60 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
			ConnectTimeout:  30 * time.Second,
			ConnectAttempts: 5,
			Migrate:         true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Newsletter: NewsletterConfig{
			BatchSize:  50,
			BatchDelay: time.Second,
			Email: EmailConfig{
				SMTPPort:         587,
				WelcomeFrom:      "FORAMA Boletín <noreply@email.forama.org>",
				NotificationFrom: "FORAMA Noticias <noreply@email.forama.org>",
				ReplyTo:          "contacto@forama.org",
			},
		},
	}
}

// Load reads configuration from the given YAML file (optional) and the
// environment, applying defaults for anything unset.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	// Double underscore separates nesting levels so that keys like
	// admin_token survive: FORAMA_NEWSLETTER__ADMIN_TOKEN -> newsletter.admin_token
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is required")
	}
	if c.Newsletter.AdminToken == "" {
		return errors.New("newsletter.admin_token is required")
	}
	if c.Newsletter.BatchSize <= 0 {
		return fmt.Errorf("newsletter.batch_size must be positive, got %d", c.Newsletter.BatchSize)
	}
	if c.Newsletter.Email.Enabled {
		if c.Newsletter.Email.SMTPHost == "" {
			return errors.New("newsletter.email.smtp_host is required when email is enabled")
		}
	}
	return nil
}
