package config

import (
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/api"
	"github.com/izzetxyz/Rick-And-Morty-Api-Task/internal/model"
)

// Default configuration values.
const (
	// DefaultBaseURL is the public Rick and Morty API root.
	DefaultBaseURL = api.DefaultBaseURL

	// DefaultTimeout bounds each individual request. The public API answers
	// well under a second; 30 seconds only trips on a stalled connection.
	DefaultTimeout = 30 * time.Second

	// DefaultConcurrency of zero leaves every fetch of a pass in flight at once.
	// A listing page holds 20 characters and locations rarely exceed a few
	// hundred residents, so the fan-out stays small.
	DefaultConcurrency = 0

	// AppName is the application name used for XDG directory paths.
	AppName = "rmcatalog"

	// DefaultUserAgent identifies rmcatalog in HTTP requests.
	DefaultUserAgent = api.DefaultUserAgent

	// DefaultMaxBodySize limits the response body size to read.
	DefaultMaxBodySize = api.DefaultMaxBodySize

	// DefaultFilter is the status filter applied when none is given.
	DefaultFilter = string(model.FilterAll)
)

// Config holds all configuration options for rmcatalog.
// It is populated from defaults, the config file, the environment and CLI
// flags, in that order, and passed down explicitly.
type Config struct {
	// BaseURL is the API root; listing, episode and location URLs are
	// resolved from it or taken verbatim from API responses.
	BaseURL string

	// Timeout is the per-request timeout. Zero disables it.
	Timeout time.Duration

	// Concurrency caps in-flight fetches per enrichment or drill-down pass.
	// Zero means unbounded.
	Concurrency int

	// Filter is the initial status filter: all, alive or dead.
	Filter string

	// Location, when set, is a location URL to drill into after loading.
	Location string

	// Proxy is an optional SOCKS5 proxy address in "host:port" format.
	Proxy string

	// UserAgent is the User-Agent header sent with API requests.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes.
	// Zero uses the default.
	MaxBodySize int64

	// Headers are extra HTTP headers sent with every request.
	Headers map[string]string

	// Cookie is an optional Cookie header value.
	Cookie string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit configuration file. When empty the
	// file is searched for (see FindConfigFile).
	ConfigFilePath string

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Save persists the rendered snapshot to the snapshot log.
	Save bool

	// DBDir is the directory holding the snapshot log.
	// Defaults to the XDG data directory (~/.local/share/rmcatalog on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
		Filter:      DefaultFilter,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		DBDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for rmcatalog.
// On Linux: ~/.local/share/rmcatalog
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for rmcatalog.
// On Linux: ~/.config/rmcatalog
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if err := validateAbsoluteURL(c.BaseURL); err != nil {
		return ErrInvalidBaseURL
	}

	// Zero disables the timeout; only negative values are rejected.
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency < 0 {
		return ErrInvalidConcurrency
	}

	if _, ok := model.ParseFilter(c.Filter); !ok {
		return ErrInvalidFilter
	}

	if c.Location != "" {
		if err := validateAbsoluteURL(c.Location); err != nil {
			return ErrInvalidLocation
		}
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}

// ClientOptions translates the network settings into API client options.
func (c *Config) ClientOptions() []api.Option {
	opts := []api.Option{
		api.WithTimeout(c.Timeout),
	}
	if c.UserAgent != "" {
		opts = append(opts, api.WithUserAgent(c.UserAgent))
	}
	if c.MaxBodySize > 0 {
		opts = append(opts, api.WithMaxBodySize(c.MaxBodySize))
	}
	if c.Proxy != "" {
		opts = append(opts, api.WithProxy(c.Proxy))
	}
	if len(c.Headers) > 0 {
		opts = append(opts, api.WithHeaders(c.Headers))
	}
	if c.Cookie != "" {
		opts = append(opts, api.WithCookie(c.Cookie))
	}
	return opts
}

// ApplyFile overlays the values present in f onto c.
func (c *Config) ApplyFile(f *File) {
	if f == nil {
		return
	}
	if f.BaseURL != "" {
		c.BaseURL = f.BaseURL
	}
	if f.Timeout != nil {
		c.Timeout = *f.Timeout
	}
	if f.Concurrency != nil {
		c.Concurrency = *f.Concurrency
	}
	if f.Filter != "" {
		c.Filter = f.Filter
	}
	if f.Proxy != "" {
		c.Proxy = f.Proxy
	}
	if f.UserAgent != "" {
		c.UserAgent = f.UserAgent
	}
	if f.Cookie != "" {
		c.Cookie = f.Cookie
	}
	if len(f.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			c.Headers[k] = v
		}
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
}

func validateAbsoluteURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidBaseURL
	}
	if u.Host == "" {
		return ErrInvalidBaseURL
	}
	return nil
}
