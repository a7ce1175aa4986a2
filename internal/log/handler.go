package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// MaskValue is the string used to replace credential values.
const MaskValue = "***REDACTED***"

// credentialKeywords mark attribute keys whose values are never logged.
var credentialKeywords = []string{
	"password", "passwd", "secret", "token", "credential", "authorization",
}

// PathHandler wraps an slog.Handler and rewrites attribute values before
// passing records on: home directory prefixes become "~" and credential
// attributes are masked.
type PathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// home is the home directory prefix to shorten; empty disables it.
	home string
}

// NewPathHandler creates a PathHandler wrapping handler. If handler is nil,
// slog.Default().Handler() is used. home is the directory replaced by "~";
// pass "" to keep paths unchanged.
func NewPathHandler(handler slog.Handler, home string) *PathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if home != "" {
		home = filepath.Clean(home)
	}
	return &PathHandler{handler: handler, home: home}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it to the underlying handler.
func (h *PathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})
	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes rewritten and added.
func (h *PathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &PathHandler{handler: h.handler.WithAttrs(rewritten), home: h.home}
}

// WithGroup returns a new handler with the given group name.
func (h *PathHandler) WithGroup(name string) slog.Handler {
	return &PathHandler{handler: h.handler.WithGroup(name), home: h.home}
}

// rewriteAttr rewrites a single attribute, recursing into groups.
func (h *PathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			rewritten[i] = h.rewriteAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if isCredentialKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	if a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, h.shortenPath(a.Value.String()))
	}

	return a
}

// shortenPath replaces a leading home directory with "~". Only whole path
// elements match, so "/home/al" does not shorten "/home/alice".
func (h *PathHandler) shortenPath(s string) string {
	if h.home == "" || !strings.HasPrefix(s, h.home) {
		return s
	}
	rest := s[len(h.home):]
	if rest == "" {
		return "~"
	}
	if rest[0] != filepath.Separator {
		return s
	}
	return "~" + rest
}

// isCredentialKey reports whether key names a credential.
func isCredentialKey(key string) bool {
	lower := strings.ToLower(key)
	for _, kw := range credentialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Options configures NewLogger.
type Options struct {
	// Verbose sets the level to Debug; otherwise Warn.
	Verbose bool

	// JSON selects the JSON handler instead of the text handler.
	JSON bool

	// Home overrides the home directory shortened in paths. When empty the
	// current user's home directory is used.
	Home string
}

// NewLogger creates the application logger writing to w.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if opts.JSON {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	home := opts.Home
	if home == "" {
		if dir, err := os.UserHomeDir(); err == nil {
			home = dir
		}
	}

	return slog.New(NewPathHandler(handler, home))
}
