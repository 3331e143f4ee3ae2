// Package config loads the runtime configuration of the users command from the environment.
package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/motoki317/fetchstate"
	"github.com/motoki317/fetchstate/users"
)

// Config holds runtime configuration for the users command.
type Config struct {
	UsersURL     string        `envconfig:"USERS_URL" default:"https://jsonplaceholder.typicode.com/users"`
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	UserAgent    string        `envconfig:"USER_AGENT" default:"fetchstate-users/1.0"`
	ErrorMessage string        `envconfig:"ERROR_MESSAGE" default:"Failed to load data. Please try again."`
	Validate     bool          `envconfig:"VALIDATE" default:"true"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Check reports configuration values that cannot work.
func (c *Config) Check() error {
	if c.UsersURL == "" {
		return errors.New("users url must be provided")
	}
	if c.HTTPTimeout < 0 {
		return errors.New("http timeout must be non-negative")
	}
	if c.ErrorMessage == "" {
		return errors.New("error message must be provided")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.New("log format must be text or json")
	}
	return nil
}

// Default returns the configuration used when no environment variable is set.
func Default() *Config {
	return &Config{
		UsersURL:     users.DefaultLocator,
		HTTPTimeout:  10 * time.Second,
		UserAgent:    "fetchstate-users/1.0",
		ErrorMessage: fetchstate.DefaultErrorMessage,
		Validate:     true,
		LogFormat:    "text",
		LogLevel:     "info",
	}
}
