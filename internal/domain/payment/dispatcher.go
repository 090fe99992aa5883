package payment

import (
	"context"
	"fmt"

	"paymux/internal/messaging"
)

// TypePaymentCommitted is the envelope type for committed payment messages.
const TypePaymentCommitted = "payment.committed"

// KafkaDispatcher publishes committed payments for the sync consumer.
// Messages are keyed by tenant so one tenant's payments stay ordered.
type KafkaDispatcher struct {
	publisher messaging.Publisher
}

var _ CommittedDispatcher = (*KafkaDispatcher)(nil)

func NewKafkaDispatcher(publisher messaging.Publisher) *KafkaDispatcher {
	return &KafkaDispatcher{publisher: publisher}
}

func (d *KafkaDispatcher) DispatchCommitted(ctx context.Context, cp CommittedPayment) error {
	env, err := messaging.NewEnvelope(cp.TenantID, TypePaymentCommitted, cp)
	if err != nil {
		return fmt.Errorf("build committed envelope: %w", err)
	}

	if err := d.publisher.Publish(ctx, env); err != nil {
		return fmt.Errorf("publish committed payment: %w", err)
	}
	return nil
}
