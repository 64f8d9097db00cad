// Package logger provides the structured slog logger shared by the CLI, the
// REST server and the generation pipeline.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/trace"
)

// ContextKey is the key type for logging values carried in a context.
type ContextKey string

const (
	RequestIDKey ContextKey = "request_id"
	ProjectIDKey ContextKey = "project_id"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
)

// New builds a logger writing to w. format "json" selects the JSON handler;
// anything else uses text.
func New(level, format string, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Init installs the process-wide logger. Output goes to stderr so command
// output on stdout stays machine readable.
func Init(level, format string) *slog.Logger {
	l := New(level, format, os.Stderr)
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
	slog.SetDefault(l)
	return l
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Default returns the process-wide logger, initialising it on first use.
func Default() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}
	return Init("info", "text")
}

// Enrich adds request-scoped attributes found in ctx to l: the request and
// project ids plus the active trace and span ids.
func Enrich(ctx context.Context, l *slog.Logger) *slog.Logger {
	if l == nil {
		l = Default()
	}
	if ctx == nil {
		return l
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		l = l.With("trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}
	if v := ctx.Value(RequestIDKey); v != nil {
		l = l.With(string(RequestIDKey), v)
	}
	if v := ctx.Value(ProjectIDKey); v != nil {
		l = l.With(string(ProjectIDKey), v)
	}
	return l
}

// FromContext returns the default logger enriched with ctx attributes.
func FromContext(ctx context.Context) *slog.Logger {
	return Enrich(ctx, Default())
}

// WithContext stores a logging value in ctx.
func WithContext(ctx context.Context, key ContextKey, value any) context.Context {
	return context.WithValue(ctx, key, value)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).InfoContext(ctx, msg, args...)
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).DebugContext(ctx, msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).WarnContext(ctx, msg, args...)
}

// Error logs at error level, attaching err when non-nil.
func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	FromContext(ctx).ErrorContext(ctx, msg, args...)
}

// Discard returns a logger that drops everything. Tests use it to keep output
// quiet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
