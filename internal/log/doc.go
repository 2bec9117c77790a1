// Package log provides slog loggers that sanitize sensitive information.
//
// The SecureHandler masks:
//   - HTTP header attributes (Authorization, Cookie, X-Api-Key) and any
//     extra header names the caller registers
//   - values that look like bearer, basic or JWT credentials
//   - URL userinfo and sensitive query values, such as a SOCKS5 proxy
//     password or an ?api_key= parameter
//
// Verbose mode lowers the level to Debug but never disables masking.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose, "X-Portal-Key")
//	logger.Debug("request", "url", u, "cookie", cookie) // cookie is masked
//	slog.SetDefault(logger)
package log
