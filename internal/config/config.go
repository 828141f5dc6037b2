package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Accounter"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"accounter"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		// JWTSecret signs and verifies API bearer tokens. Empty disables
		// authentication, which is only acceptable for local development.
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
	}

	Matching struct {
		// AdminBusinessID identifies the bookkeeping entity on whose
		// behalf charges are reconciled.
		AdminBusinessID string  `envconfig:"ADMIN_BUSINESS_ID"`
		AcceptThreshold float64 `envconfig:"MATCHING_ACCEPT_THRESHOLD" default:"0.95"`
		ReviewThreshold float64 `envconfig:"MATCHING_REVIEW_THRESHOLD" default:"0.5"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
