// Package config loads the server settings from REGCHECK_* environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	regcheck "github.com/reoring/regcheck"
)

const prefix = "REGCHECK"

// Config holds all server configuration.
// Example: REGCHECK_HTTP_ADDR=:9090, REGCHECK_UNKNOWN_FIELDS=strip
type Config struct {
	// HTTPAddr is the listen address (default: :8080)
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	// ShutdownTimeout bounds graceful shutdown (default: 10s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// LogLevel is debug, info, warn or error (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogMode is production or development (default: production)
	LogMode string `envconfig:"LOG_MODE" default:"production"`

	// UnknownFields is reject or strip (default: reject)
	UnknownFields string `envconfig:"UNKNOWN_FIELDS" default:"reject"`

	// MaxBytes caps the request payload (default: 1 MiB)
	MaxBytes int64 `envconfig:"MAX_BYTES" default:"1048576"`

	// Language is the fallback message language when a request carries no
	// Accept-Language header (default: en)
	Language string `envconfig:"LANGUAGE" default:"en"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := cfg.ParseOpt(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseOpt converts the settings into parse options.
func (c *Config) ParseOpt() (regcheck.ParseOpt, error) {
	opt := regcheck.DefaultParseOpt()
	switch strings.ToLower(c.UnknownFields) {
	case "reject", "":
		opt.Unknown = regcheck.UnknownStrict
	case "strip":
		opt.Unknown = regcheck.UnknownStrip
	default:
		return opt, fmt.Errorf("invalid %s_UNKNOWN_FIELDS %q: want reject or strip", prefix, c.UnknownFields)
	}
	if c.MaxBytes < 0 {
		return opt, fmt.Errorf("invalid %s_MAX_BYTES %d", prefix, c.MaxBytes)
	}
	opt.MaxBytes = c.MaxBytes
	return opt, nil
}
