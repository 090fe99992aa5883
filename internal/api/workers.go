package api

import (
	"context"

	"paymux/config"
	"paymux/internal/api/consumers"
	"paymux/internal/domain/payment"
	"paymux/internal/external/kafka"
	"paymux/internal/messaging"
	"paymux/pkg/logger"
)

// StartWorkers starts the Kafka consumer that syncs committed payments into
// Odoo. It returns immediately and stops when ctx is cancelled.
func StartWorkers(
	ctx context.Context,
	l *logger.Logger,
	cfg config.Config,
	paymentService *payment.PaymentService,
) {
	dlqPub := kafka.NewDLQPublisher(l, cfg.KafkaBrokers, cfg.KafkaPaymentsDLQTopic)

	// Consumer with retry + DLQ + metrics middleware
	controller := consumers.NewPaymentMessageController(l, paymentService)
	handler := messaging.WithMetrics(
		messaging.WithDLQ(
			messaging.WithRetry(controller.HandleMessage, messaging.DefaultRetryConfig()),
			dlqPub,
		),
		cfg.KafkaPaymentsTopic,
		cfg.KafkaPaymentsConsumerGroup,
	)

	consumer := kafka.NewConsumer(l, cfg.KafkaBrokers, cfg.KafkaPaymentsTopic, cfg.KafkaPaymentsConsumerGroup)
	runner := messaging.NewRunner(l, []messaging.Worker{consumer}, handler)

	go func() {
		defer dlqPub.Close()

		l.Info("Starting committed payments consumer: topic=%s group=%s",
			cfg.KafkaPaymentsTopic, cfg.KafkaPaymentsConsumerGroup)
		if err := runner.Start(ctx); err != nil {
			l.Error("Committed payments runner failed: %v", err)
		}
	}()
}
