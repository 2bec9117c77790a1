package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".rmcatalog"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .rmcatalog configuration file.
// Every field is optional; absent fields leave the defaults in place.
type File struct {
	// BaseURL overrides the API root.
	BaseURL string `yaml:"baseURL,omitempty"`

	// Timeout is the per-request timeout, e.g. "10s". "0s" disables it.
	Timeout *time.Duration `yaml:"timeout,omitempty"`

	// Concurrency caps in-flight fetches per pass. 0 means unbounded.
	Concurrency *int `yaml:"concurrency,omitempty"`

	// Filter is the default status filter.
	Filter string `yaml:"filter,omitempty"`

	// Proxy is a SOCKS5 proxy address in "host:port" format.
	Proxy string `yaml:"proxy,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Cookie is sent as the Cookie header.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers,omitempty"`

	// DBDir overrides the snapshot log directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers decide whether that is fatal based on whether the path was
// given explicitly.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .rmcatalog in the current directory
// 3. Look for .rmcatalog in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
