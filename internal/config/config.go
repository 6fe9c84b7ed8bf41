package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultPort            = "8080"
	DefaultEnv             = "development"
	DefaultLogLevel        = "info"
	DefaultMaxLength       = 4096
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the server settings. Precedence, lowest first: defaults,
// the optional TOML file, then environment variables (including .env).
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	MaxLength       int
	ShutdownTimeout time.Duration
}

// fileConfig mirrors Config in TOML form.
type fileConfig struct {
	Port            string `toml:"port"`
	Env             string `toml:"env"`
	LogLevel        string `toml:"log_level"`
	MaxLength       *int   `toml:"max_password_length"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Port:            DefaultPort,
		Env:             DefaultEnv,
		LogLevel:        DefaultLogLevel,
		MaxLength:       DefaultMaxLength,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// LoadDotEnv loads a .env file into the process environment when one exists.
// Variables already set are left untouched.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load builds the configuration. path may be empty, in which case no file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.Env != "" {
		c.Env = fc.Env
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.MaxLength != nil {
		c.MaxLength = *fc.MaxLength
	}
	if fc.ShutdownTimeout != "" {
		d, err := time.ParseDuration(fc.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("%w: shutdown_timeout %q: %v", ErrInvalidConfig, fc.ShutdownTimeout, err)
		}
		c.ShutdownTimeout = d
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.Env = getEnv("ENV", c.Env)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	if v := os.Getenv("MAX_PASSWORD_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: MAX_PASSWORD_LENGTH %q is not an integer", ErrInvalidConfig, v)
		}
		c.MaxLength = n
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: SHUTDOWN_TIMEOUT %q: %v", ErrInvalidConfig, v, err)
		}
		c.ShutdownTimeout = d
	}
	return nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%w: port must be set", ErrInvalidConfig)
	}
	if n, err := strconv.Atoi(c.Port); err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("%w: port %q is not a valid TCP port", ErrInvalidConfig, c.Port)
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("%w: max password length must not be negative", ErrInvalidConfig)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown timeout must be positive", ErrInvalidConfig)
	}
	if c.IsProduction() && strings.EqualFold(c.LogLevel, "debug") {
		return fmt.Errorf("%w: debug logging is not allowed in production", ErrInvalidConfig)
	}
	return nil
}

// IsProduction reports whether the server runs in the production environment.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
