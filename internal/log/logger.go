package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

const (
	correlationIDAttr = "correlation_id"
	traceIDAttr       = "trace_id"
)

// Logger is a JSON slog logger. Request-scoped copies carry the correlation
// id and, when the request is sampled, the trace id.
type Logger struct {
	*slog.Logger
}

func NewLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// NewLoggerFromEnv writes to stdout at LOG_LEVEL (debug, info, warn, error).
// Unknown values fall back to info.
func NewLoggerFromEnv() *Logger {
	return NewLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// With returns a child logger carrying args on every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithCorrelationID tags records with the correlation id stored in ctx, or a
// fresh one.
func (l *Logger) WithCorrelationID(ctx context.Context) *Logger {
	args := []any{correlationIDAttr, CorrelationIDFromContext(ctx)}

	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		args = append(args, traceIDAttr, sc.TraceID().String())
	}

	return l.With(args...)
}

func GenerateCorrelationID() string {
	return uuid.NewString()
}

// GetLoggerInstanceFromContext returns the request logger stored in ctx.
// Outside a request it derives one from fallback, or from a stdout logger
// when fallback is nil.
func GetLoggerInstanceFromContext(ctx context.Context, fallback *Logger) *Logger {
	if fallback == nil {
		fallback = NewLogger(os.Stdout, slog.LevelInfo)
	}
	if ctx == nil {
		return fallback
	}

	if l, ok := ctx.Value(loggerKey{}).(*Logger); ok {
		return l
	}
	return fallback.WithCorrelationID(ctx)
}
