package consumers

import (
	"context"
	"encoding/json"
	"fmt"

	"paymux/internal/domain/payment"
	"paymux/internal/messaging"
	"paymux/pkg/logger"
)

// PaymentMessageController handles committed payment messages from Kafka.
type PaymentMessageController struct {
	logger  *logger.Logger
	service *payment.PaymentService
}

// NewPaymentMessageController creates a new payment message controller.
func NewPaymentMessageController(l *logger.Logger, s *payment.PaymentService) *PaymentMessageController {
	return &PaymentMessageController{
		logger:  l,
		service: s,
	}
}

// HandleMessage processes a single committed payment message.
func (c *PaymentMessageController) HandleMessage(ctx context.Context, key, value []byte) error {
	var env messaging.Envelope
	if err := json.Unmarshal(value, &env); err != nil {
		c.logger.ErrorCtx(ctx, "Failed to unmarshal envelope: key=%s error=%v", string(key), err)
		return fmt.Errorf("unmarshal envelope: %w", err)
	}

	c.logger.DebugCtx(ctx, "Processing payment message: event_id=%s tenant_id=%s type=%s",
		env.EventID, env.TenantID, env.Type)

	var cp payment.CommittedPayment
	if err := json.Unmarshal(env.Payload, &cp); err != nil {
		c.logger.ErrorCtx(ctx, "Failed to unmarshal committed payment: event_id=%s error=%v", env.EventID, err)
		return fmt.Errorf("unmarshal committed payment: %w", err)
	}

	// ProcessCommitted swallows duplicate sync events itself, so a redelivered
	// message re-runs the Odoo calls idempotently instead of erroring.
	if err := c.service.ProcessCommitted(ctx, cp); err != nil {
		c.logger.ErrorCtx(ctx, "Failed to sync committed payment: event_id=%s buy_order=%s error=%v",
			env.EventID, cp.BuyOrder, err)
		return err
	}

	c.logger.InfoCtx(ctx, "Committed payment synced: event_id=%s buy_order=%s tenant_id=%s",
		env.EventID, cp.BuyOrder, cp.TenantID)

	return nil
}
