// Package correlation propagates a per-request correlation ID across the
// HTTP surface, the log stream and the Kafka hop.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// HeaderName is the HTTP header carrying the correlation ID.
const HeaderName = "X-Correlation-ID"

// KafkaHeaderName is the Kafka record header carrying the correlation ID.
// Kafka headers are not HTTP headers, so the key follows the snake_case
// convention of the payloads on the bus.
const KafkaHeaderName = "correlation_id"

type contextKey struct{}

// FromContext extracts the correlation ID from ctx, empty when absent.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// WithID returns a new context carrying the given correlation ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// EnsureID returns ctx unchanged when it already carries a correlation ID
// and attaches a fresh one otherwise.
func EnsureID(ctx context.Context) context.Context {
	if FromContext(ctx) != "" {
		return ctx
	}
	return WithID(ctx, NewID())
}

// NewID generates a new correlation ID (UUID v4).
func NewID() string {
	return uuid.New().String()
}
