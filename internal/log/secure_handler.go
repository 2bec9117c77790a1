package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// MaskValue is the string used to replace sensitive values.
const MaskValue = "***REDACTED***"

// defaultSensitiveKeys are attribute keys that are always masked.
var defaultSensitiveKeys = []string{
	// HTTP headers the client may send upstream.
	"authorization", "proxy-authorization", "cookie", "set-cookie",
	"x-api-key", "x-auth-token",

	// Credentials.
	"password", "passwd", "secret", "token", "api_key", "apikey", "api-key",
	"access_token", "refresh_token", "credential", "credentials", "auth",

	// Session identifiers.
	"session", "session_id", "sessionid", "sid",
}

// sensitiveKeywords mask any key that contains them. The bare "key" is
// left out; it matches too much ("primary_key", "monkey").
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "auth", "credential",
}

// sensitivePatterns mask a string value regardless of its key.
var sensitivePatterns = []*regexp.Regexp{
	// JWT
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`(?i)^bearer\s+.+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	// Long opaque API keys.
	regexp.MustCompile(`^[a-zA-Z0-9]{32,}$`),
}

// redactor decides which attribute values must not reach the log.
type redactor struct {
	keys map[string]struct{}
}

func newRedactor(extraKeys []string) *redactor {
	r := &redactor{keys: make(map[string]struct{}, len(defaultSensitiveKeys)+len(extraKeys))}
	for _, k := range defaultSensitiveKeys {
		r.keys[k] = struct{}{}
	}
	for _, k := range extraKeys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			r.keys[k] = struct{}{}
		}
	}
	return r
}

func (r *redactor) sensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if _, ok := r.keys[key]; ok {
		return true
	}
	return containsSensitiveKeyword(key)
}

// redactString masks whole values that look like secrets and, for URLs,
// only the credential parts so the endpoint stays readable.
func (r *redactor) redactString(s string) string {
	if isSensitiveValue(s) {
		return MaskValue
	}
	return r.redactURL(s)
}

// redactURL masks the userinfo of an absolute URL and the values of any
// query parameter whose name is a sensitive key. Non-URLs are returned
// unchanged.
func (r *redactor) redactURL(s string) string {
	if !strings.Contains(s, "://") {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return s
	}

	changed := false
	if u.User != nil {
		u.User = url.User(MaskValue)
		changed = true
	}
	if u.RawQuery != "" {
		q := u.Query()
		masked := false
		for name := range q {
			if r.sensitiveKey(name) {
				q.Set(name, MaskValue)
				masked = true
			}
		}
		if masked {
			u.RawQuery = q.Encode()
			changed = true
		}
	}
	if !changed {
		return s
	}
	// url.String escapes the mask; keep it readable in the log line.
	out := u.String()
	return strings.ReplaceAll(out, url.QueryEscape(MaskValue), MaskValue)
}

func (r *redactor) attr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		out := make([]slog.Attr, len(group))
		for i, ga := range group {
			out[i] = r.attr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}

	if r.sensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}
	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); s != "" {
			if red := r.redactString(s); red != s {
				return slog.String(a.Key, red)
			}
		}
	}
	return a
}

// SecureHandler wraps an slog.Handler and masks sensitive attribute
// values before they reach it. A key is sensitive when it is one of the
// built-in header or credential names, one of the extra keys given at
// construction, or contains a credential keyword. String values are
// masked when they look like tokens; URLs keep their host and path but
// lose their userinfo and sensitive query values.
type SecureHandler struct {
	handler  slog.Handler
	redactor *redactor
}

// NewSecureHandler creates a new SecureHandler wrapping the given handler.
// If handler is nil, slog.Default().Handler() is used. extraKeys are
// masked in addition to the built-in sensitive keys, case-insensitively.
func NewSecureHandler(handler slog.Handler, extraKeys ...string) *SecureHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SecureHandler{handler: handler, redactor: newRedactor(extraKeys)}
}

// Enabled reports whether the handler handles records at the given level.
func (h *SecureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle sanitizes the record's attributes and passes it to the underlying handler.
func (h *SecureHandler) Handle(ctx context.Context, r slog.Record) error {
	sanitized := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		sanitized.AddAttrs(h.redactor.attr(a))
		return true
	})
	return h.handler.Handle(ctx, sanitized)
}

// WithAttrs returns a new handler with the given attributes sanitized and added.
func (h *SecureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = h.redactor.attr(a)
	}
	return &SecureHandler{handler: h.handler.WithAttrs(out), redactor: h.redactor}
}

// WithGroup returns a new handler with the given group name.
func (h *SecureHandler) WithGroup(name string) slog.Handler {
	return &SecureHandler{handler: h.handler.WithGroup(name), redactor: h.redactor}
}

func containsSensitiveKeyword(key string) bool {
	for _, keyword := range sensitiveKeywords {
		if strings.Contains(key, keyword) {
			return true
		}
	}
	return false
}

func isSensitiveValue(value string) bool {
	for _, pattern := range sensitivePatterns {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

func levelFor(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// NewSecureLogger creates a new slog.Logger that writes sanitized text output.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//   - extraKeys: additional attribute keys to mask, such as custom header names
func NewSecureLogger(w io.Writer, verbose bool, extraKeys ...string) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewSecureHandler(h, extraKeys...))
}

// NewSecureJSONLogger is NewSecureLogger with JSON output.
func NewSecureJSONLogger(w io.Writer, verbose bool, extraKeys ...string) *slog.Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: levelFor(verbose)})
	return slog.New(NewSecureHandler(h, extraKeys...))
}
