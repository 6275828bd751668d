package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Acme Dashboard"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"ledgerboard"`
		SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret       string        `envconfig:"AUTH_SECRET" required:"true"`
		SessionTTL   time.Duration `envconfig:"AUTH_SESSION_TTL" default:"24h"`
		CookieName   string        `envconfig:"AUTH_COOKIE_NAME" default:"session"`
		SecureCookie bool          `envconfig:"AUTH_SECURE_COOKIE" default:"true"`
	}

	// Login attempts are only limited when Redis.Addr is set.
	Redis struct {
		Addr        string        `envconfig:"REDIS_ADDR"`
		Password    string        `envconfig:"REDIS_PASSWORD"`
		LoginLimit  int           `envconfig:"LOGIN_RATE_LIMIT" default:"5"`
		LoginWindow time.Duration `envconfig:"LOGIN_RATE_WINDOW" default:"1m"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name, c.DB.SSLMode)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
