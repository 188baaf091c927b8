package log

import "context"

type (
	correlationIDKey struct{}
	loggerKey        struct{}
)

// ContextWithCorrelationID stores id for later WithCorrelationID calls.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromContext returns the stored id or generates one.
func CorrelationIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok && id != "" {
		return id
	}
	return GenerateCorrelationID()
}

// ContextWithLogger makes l the logger returned by GetLoggerInstanceFromContext.
func ContextWithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}
