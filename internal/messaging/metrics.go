package messaging

import (
	"context"
	"time"

	"paymux/pkg/metrics"
)

// WithMetrics wraps a handler to record processing counts and latency per
// topic and consumer group.
func WithMetrics(handler MessageHandler, topic, group string) MessageHandler {
	return func(ctx context.Context, key, value []byte) error {
		start := time.Now()

		err := handler(ctx, key, value)

		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.KafkaProcessingDuration.WithLabelValues(topic, group, status).Observe(time.Since(start).Seconds())
		metrics.KafkaMessagesProcessed.WithLabelValues(topic, group, status).Inc()

		return err
	}
}
