package api

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/net/proxy"
)

// Defaults used when the corresponding option is not given.
const (
	DefaultBaseURL     = "https://rickandmortyapi.com/api"
	DefaultUserAgent   = "rmcatalog/1.0 (+https://github.com/izzetxyz/Rick-And-Morty-Api-Task)"
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Client fetches resources from the character service.
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *slog.Logger

	userAgent   string
	maxBodySize int64

	// settings collected by options before the http.Client is built
	timeout      time.Duration
	proxyAddress string
	cookie       string
	headers      map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithProxy routes every request through the SOCKS5 proxy at address
// ("host:port").
func WithProxy(address string) Option {
	return func(c *Client) {
		c.proxyAddress = address
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHeaders adds headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = headers
	}
}

// WithCookie adds a raw cookie string ("name=value; ...") to every request.
func WithCookie(cookie string) Option {
	return func(c *Client) {
		c.cookie = cookie
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
// Larger bodies are reported as ErrDecode.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying http.Client. Timeout, proxy,
// cookie and header options are ignored when this is set.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a Client for the service rooted at baseURL
// (e.g. "https://rickandmortyapi.com/api").
//
// NewClient does not contact the service.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseAbsoluteURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:     base,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.http == nil {
		hc, err := c.newHTTPClient()
		if err != nil {
			return nil, err
		}
		c.http = hc
	}

	headerAttrs := make([]any, 0, len(c.headers))
	for name, value := range c.headers {
		headerAttrs = append(headerAttrs, slog.String(name, value))
	}
	c.logger.Debug("api client configured",
		"base_url", c.baseURL.String(),
		"proxy", c.proxyAddress,
		"timeout", c.timeout,
		"cookie", c.cookie,
		slog.Group("headers", headerAttrs...),
	)

	return c, nil
}

// newHTTPClient builds the http.Client from the collected options.
func (c *Client) newHTTPClient() (*http.Client, error) {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 32,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	if c.proxyAddress != "" {
		if !isValidProxyAddress(c.proxyAddress) {
			return nil, ErrInvalidProxyAddress
		}
		dialer, err := proxy.SOCKS5("tcp", c.proxyAddress, nil, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Proxy = nil
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			transport.DialContext = cd.DialContext
		} else {
			transport.DialContext = func(_ context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		}
	}

	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	var rt http.RoundTripper = transport
	if c.cookie != "" || len(c.headers) > 0 {
		rt = &headerInjectingTransport{
			base:    transport,
			cookie:  c.cookie,
			headers: c.headers,
		}
	}

	return &http.Client{
		Transport: rt,
		Timeout:   c.timeout,
		Jar:       jar,
	}, nil
}

// isValidProxyAddress checks for "host:port" with a port in 1..65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return false
	}
	return n >= 1 && n <= 65535
}

// parseAbsoluteURL parses raw and requires an http(s) scheme and a host.
func parseAbsoluteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return u, nil
}

// BaseURL returns the service root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// get performs a GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if _, err := parseAbsoluteURL(rawURL); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrInvalidURL, rawURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", ErrNetwork, rawURL, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("fetched",
		"url", rawURL,
		"status", resp.StatusCode,
		"elapsed", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024)) //nolint:errcheck // best effort
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: reading body: %w", ErrNetwork, rawURL, err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("%w: GET %s: body exceeds %d bytes", ErrDecode, rawURL, c.maxBodySize)
	}

	return body, nil
}

// headerInjectingTransport adds configured headers and cookies to every
// outgoing request.
type headerInjectingTransport struct {
	base    http.RoundTripper
	cookie  string
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.cookie != "" {
		if existing := clone.Header.Get("Cookie"); existing != "" {
			clone.Header.Set("Cookie", existing+"; "+t.cookie)
		} else {
			clone.Header.Set("Cookie", t.cookie)
		}
	}

	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
