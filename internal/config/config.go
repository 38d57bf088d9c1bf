package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName                string        `env:"APP_NAME" envDefault:"MyContacts" validate:"required"`
	Env                    string        `env:"APP_ENV" envDefault:"development" validate:"required"`
	Port                   string        `env:"PORT" envDefault:"5000" validate:"required"`
	LogLevel               string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	DatabaseURL            string        `env:"DATABASE_URL"`
	RedisURL               string        `env:"REDIS_URL"`
	JWTSecret              string        `env:"JWT_SECRET" validate:"required"`
	TokenTTL               time.Duration `env:"TOKEN_TTL" envDefault:"1h" validate:"gt=0"`
	BcryptCost             int           `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`
	LoginAttemptsPerMinute int           `env:"LOGIN_ATTEMPTS_PER_MINUTE" envDefault:"5" validate:"gte=0"`
	IdempotencyTTL         time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h" validate:"gt=0"`
	ShutdownPeriod         time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	ConnectTimeout         time.Duration `env:"CONNECT_TIMEOUT" envDefault:"10s" validate:"gt=0"`
	CORSOrigins            string        `env:"CORS_ORIGINS" envDefault:"*"`
}

// Load reads an optional .env file and the process environment, then validates the result.
func Load() (Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and the storage requirements of non-dev environments.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if !c.IsDev() {
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be set")
		}
		if c.RedisURL == "" {
			return errors.New("REDIS_URL must be set")
		}
	}
	return nil
}

// IsDev reports whether the app runs in a local environment where in-memory stores are allowed.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}
