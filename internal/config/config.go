// Package config loads application configuration from the environment.
// A .env file in the working directory is read first when present;
// variables already set in the process environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration values. Each leaf field maps to
// one environment variable; nested structs prefix their children
// (DB_HOST, SEED_TERRAINS, ...). Nested fields carry no envconfig tag: a
// tagged field falls back to its bare name, so DB_USER would pick up $USER.
type Config struct {
	Env        string          `envconfig:"APP_ENV" default:"dev"`
	Port       string          `envconfig:"APP_PORT" default:"8080"`
	BcryptCost int             `envconfig:"BCRYPT_COST" default:"10"`
	UploadDir  string          `envconfig:"UPLOAD_DIR" default:"storage/terrains"`
	DB         DBConfig        `envconfig:"DB"`
	JWT        JWTConfig       `envconfig:"JWT"`
	Redis      RedisConfig     `envconfig:"REDIS"`
	RateLimit  RateLimitConfig `envconfig:"RATE_LIMIT"`
	AMQP       AMQPConfig      `envconfig:"RABBITMQ"`
	Seed       SeedConfig      `envconfig:"SEED"`
}

// DBConfig describes the MySQL connection.
type DBConfig struct {
	User string `default:"root"`
	Pass string
	Host string `default:"127.0.0.1"`
	Port string `default:"3306"`
	Name string `default:"terrain_rental"`
}

// JWTConfig controls access token signing.
type JWTConfig struct {
	Secret    string
	AccessTTL time.Duration `split_words:"true" default:"15m"`
}

// AMQPConfig points at the RabbitMQ broker receiving domain events.
// An empty URL disables publishing.
type AMQPConfig struct {
	URL string
}

// IsProd reports whether the application runs in production.
func (c Config) IsProd() bool { return c.Env == "prod" }

// Load reads the optional .env file and the process environment into a
// Config, applies defaults and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	cfg.RateLimit = cfg.RateLimit.normalize()
	if err := cfg.Seed.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// RequireJWT fails when no signing secret is configured. Only the HTTP
// server needs one.
func (c Config) RequireJWT() error {
	if c.JWT.Secret == "" {
		return errors.New("missing required env var: JWT_SECRET")
	}
	return nil
}
