package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment overrides. Unset variables leave the
// corresponding pointer nil or string empty.
type Env struct {
	BaseURL     string         `env:"RMCATALOG_BASE_URL"`
	Timeout     *time.Duration `env:"RMCATALOG_TIMEOUT"`
	Proxy       string         `env:"RMCATALOG_PROXY"`
	Concurrency *int           `env:"RMCATALOG_CONCURRENCY"`
	UserAgent   string         `env:"RMCATALOG_USER_AGENT"`
}

// ParseEnv loads overrides from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// parseEnvFrom loads overrides from an explicit variable map.
func parseEnvFrom(environ map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: environ}); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// ApplyEnv overlays the set environment overrides onto c.
func (c *Config) ApplyEnv(e Env) {
	if e.BaseURL != "" {
		c.BaseURL = e.BaseURL
	}
	if e.Timeout != nil {
		c.Timeout = *e.Timeout
	}
	if e.Proxy != "" {
		c.Proxy = e.Proxy
	}
	if e.Concurrency != nil {
		c.Concurrency = *e.Concurrency
	}
	if e.UserAgent != "" {
		c.UserAgent = e.UserAgent
	}
}
