package payment

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -source events.go -destination mock_events.go -package payment

type EventSink interface {
	// CreatePaymentEvent appends a new payment event.
	// Returns ErrEventAlreadyStored if an event with the same (token, kind) already exists.
	CreatePaymentEvent(ctx context.Context, event NewPaymentEvent) (*PaymentEvent, error)
	GetPaymentEvents(ctx context.Context, query PaymentEventQuery) (PaymentEventPage, error)
}

type PaymentEvent struct {
	EventID string `json:"event_id"`
	NewPaymentEvent
}

type NewPaymentEvent struct {
	Token     string           `json:"token"`
	BuyOrder  string           `json:"buy_order"`
	TenantID  string           `json:"tenant_id"`
	Kind      PaymentEventKind `json:"kind"`
	Data      json.RawMessage  `json:"data"`
	CreatedAt time.Time        `json:"created_at"`
}

type PaymentEventKind string

const (
	EventPaymentInitialized PaymentEventKind = "payment.initialized"
	EventPaymentAuthorized  PaymentEventKind = "payment.authorized"
	EventPaymentRejected    PaymentEventKind = "payment.rejected"
	EventPaymentCancelled   PaymentEventKind = "payment.cancelled"
	EventPaymentFailed      PaymentEventKind = "payment.failed"
	EventOrderSynced        PaymentEventKind = "payment.synced"
	EventOrderSyncFailed    PaymentEventKind = "payment.sync_failed"
)

type PaymentEventPage struct {
	Items      []PaymentEvent `json:"items"`
	NextCursor string         `json:"next_cursor"`
	HasMore    bool           `json:"has_more"`
}

type PaymentEventQuery struct {
	BuyOrders []string           `json:"buy_orders" url:"buy_orders" form:"buy_orders,omitempty"`
	TenantIDs []string           `json:"tenant_ids" url:"tenant_ids" form:"tenant_ids,omitempty"`
	Kinds     []PaymentEventKind `json:"kinds" url:"kinds" form:"kinds,omitempty"`

	TimeFrom *time.Time `json:"time_from,omitempty" url:"time_from,omitempty" form:"time_from,omitempty"`
	TimeTo   *time.Time `json:"time_to,omitempty" url:"time_to,omitempty" form:"time_to,omitempty"`

	Limit   int    `json:"limit" url:"limit" form:"limit"`
	Cursor  string `json:"cursor" url:"cursor" form:"cursor"`
	SortAsc bool   `json:"sort_asc" url:"sort_asc" form:"sort_asc"`
}

// eventFor captures the payment's identity for the audit trail. The payload
// is marshalled best effort, a journal write never fails on it.
func eventFor(p Payment, kind PaymentEventKind, payload any) NewPaymentEvent {
	var data json.RawMessage
	if payload != nil {
		data, _ = json.Marshal(payload)
	}

	return NewPaymentEvent{
		Token:     p.Token,
		BuyOrder:  p.BuyOrder,
		TenantID:  p.TenantID,
		Kind:      kind,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}
}
