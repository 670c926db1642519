// Package config loads runtime settings from environment variables.
//
// Every setting has an env var and, where sensible, a default:
//
//	PORT=8080                 HTTP listen port
//	SHUTDOWN_TIMEOUT=30s      grace period for in-flight requests
//	GRAPHIQL=false            serve the GraphiQL page at /graphiql
//	STORE_DRIVER=sqlite       sqlite | postgres
//	DB_PATH=data/events.db    sqlite file
//	DATABASE_URL=             postgres connection URL
//	STORE_TIMEOUT=5s          deadline for every persistence call
//	AUTO_MIGRATE=true         apply postgres migrations on start
//	JWT_SECRET=               HMAC key for acting-user tokens (required, >= 16 chars)
//	TOKEN_TTL=15m             lifetime of tokens minted by eventctl
//	LOG_LEVEL=info            debug | info | warn | error
//	LOG_FORMAT=text           text | json
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/sakif/event-booking/internal/auth"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Auth   AuthConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port            int           `env:"PORT"             envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	GraphiQL        bool          `env:"GRAPHIQL"         envDefault:"false"`
}

type StoreConfig struct {
	Driver      string        `env:"STORE_DRIVER"  envDefault:"sqlite"`
	DBPath      string        `env:"DB_PATH"       envDefault:"data/events.db"`
	DatabaseURL string        `env:"DATABASE_URL"`
	Timeout     time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`
	AutoMigrate bool          `env:"AUTO_MIGRATE"  envDefault:"true"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"15m"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL"  envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// ParseEnv loads configuration from environment variables without validating it.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result for the server.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks everything the server needs to start.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	if err := c.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Auth.Validate(); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func (s StoreConfig) Validate() error {
	if s.Timeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	switch s.Driver {
	case DriverSQLite:
		if s.DBPath == "" {
			return errors.New("DB_PATH is required for the sqlite store")
		}
	case DriverPostgres:
		if s.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, s.Driver)
	}
	return nil
}

func (a AuthConfig) Validate() error {
	if len(a.JWTSecret) < auth.MinSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", auth.MinSecretLength)
	}
	if a.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	return nil
}
