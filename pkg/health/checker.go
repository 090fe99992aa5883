package health

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single readiness sweep.
const DefaultTimeout = 5 * time.Second

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result is the outcome of a single health check.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker is the interface for health check implementations.
type Checker interface {
	// Name returns the name of the component being checked.
	Name() string
	// Check performs the health check and returns the result.
	Check(ctx context.Context) Result
}

// NamedCheck adapts a plain function to the Checker interface. Used for
// process-local checks that need no dedicated type, like registry state.
func NamedCheck(name string, fn func(ctx context.Context) Result) Checker {
	return funcChecker{name: name, fn: fn}
}

type funcChecker struct {
	name string
	fn   func(ctx context.Context) Result
}

func (c funcChecker) Name() string                      { return c.name }
func (c funcChecker) Check(ctx context.Context) Result { return c.fn(ctx) }
