package payment

import "errors"

var (
	// ErrNotFound is returned when no journal row matches the lookup
	ErrNotFound = errors.New("payment not found")

	// ErrAlreadyExists is returned when a journal row with the same token already exists
	ErrAlreadyExists = errors.New("payment already exists")

	// ErrInvalidAmount is returned when an init request carries a non-positive amount
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidStatus is returned when attempting an inappropriate status transition
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrTenantUnresolved is returned when neither the origin nor the payload names a tenant
	ErrTenantUnresolved = errors.New("tenant could not be resolved")

	// ErrCallbackUnresolved is returned when a commit callback matches no tenant or journal row
	ErrCallbackUnresolved = errors.New("commit callback matches no known payment")

	// ErrOrderNotMatched is returned when Odoo has no sale order for the payment criteria
	ErrOrderNotMatched = errors.New("no matching sale order")

	// ErrNotCommitted is returned when a resync is requested for a payment that was never authorized
	ErrNotCommitted = errors.New("payment is not authorized")

	// ErrEventAlreadyStored is returned when an event with the same (token, kind) already exists
	ErrEventAlreadyStored = errors.New("event already stored")

	// ErrSearchUnavailable is returned when no search backend is configured
	ErrSearchUnavailable = errors.New("event search unavailable")

	// ErrInvalidQuery is returned when payment query validation fails
	ErrInvalidQuery = errors.New("invalid payments query")
)
