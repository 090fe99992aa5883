// Package payment implements the transaction journal and the orchestration
// between tenants, the Webpay gateway and the tenant's Odoo backend.
package payment

import (
	"fmt"
	"time"
)

type Status string

const (
	// StatusInitialized means a Webpay transaction was opened and the buyer
	// was handed the payment form URL.
	StatusInitialized Status = "initialized"
	// StatusAuthorized means Transbank captured the payment.
	StatusAuthorized Status = "authorized"
	// StatusRejected means the commit came back declined.
	StatusRejected Status = "rejected"
	// StatusCancelled means the buyer abandoned the payment form.
	StatusCancelled Status = "cancelled"
	// StatusFailed means the flow broke before a definite outcome.
	StatusFailed Status = "failed"
)

func NewStatus(raw string) (Status, error) {
	s := Status(raw)
	switch s {
	case StatusInitialized, StatusAuthorized, StatusRejected, StatusCancelled, StatusFailed:
		return s, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// Terminal reports whether the status closes the journal row.
func (s Status) Terminal() bool {
	return s != StatusInitialized
}

// CanBeUpdatedTo permits exactly one move: out of initialized into any
// terminal status.
func (s Status) CanBeUpdatedTo(next Status) bool {
	return s == StatusInitialized && next.Terminal()
}

// Payment is one journal row: a Webpay transaction opened on behalf of a
// tenant's storefront. Token is unique per transaction; BuyOrder may repeat
// when a buyer retries the same purchase.
type Payment struct {
	ID                string    `json:"id"`
	Token             string    `json:"token"`
	BuyOrder          string    `json:"buy_order"`
	TenantID          string    `json:"tenant_id"`
	SessionID         string    `json:"session_id"`
	Amount            int64     `json:"amount"`
	CustomerHint      string    `json:"customer_hint,omitempty"`
	OrderDate         string    `json:"order_date,omitempty"`
	Status            Status    `json:"status"`
	AuthorizationCode string    `json:"authorization_code,omitempty"`
	PaymentTypeCode   string    `json:"payment_type_code,omitempty"`
	ResponseCode      *int32    `json:"response_code,omitempty"`
	CardNumber        string    `json:"card_number,omitempty"`
	OdooOrderID       *int64    `json:"odoo_order_id,omitempty"`
	OdooOrderName     string    `json:"odoo_order_name,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PaymentsQuery filters the journal. Zero-valued fields are skipped.
type PaymentsQuery struct {
	BuyOrders []string
	TenantIDs []string
	Statuses  []Status

	Limit     uint64
	Offset    uint64
	SortOrder string // asc or desc by created_at, desc by default
}

func (q *PaymentsQuery) Validate() error {
	for _, s := range q.Statuses {
		if _, err := NewStatus(string(s)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
	}
	switch q.SortOrder {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("%w: sort order %q", ErrInvalidQuery, q.SortOrder)
	}

	return nil
}

// PaymentUpdate closes a journal row with the commit outcome. Token selects
// the row when set; otherwise the latest row for BuyOrder is updated.
type PaymentUpdate struct {
	Token             string
	BuyOrder          string
	Status            Status
	AuthorizationCode string
	PaymentTypeCode   string
	ResponseCode      *int32
	CardNumber        string
}
