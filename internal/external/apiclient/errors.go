// Package apiclient provides the shared error taxonomy and retry policy for
// outbound HTTP clients.
package apiclient

import "errors"

var (
	// ErrBadRequest is returned when the request is malformed (HTTP 400)
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned when the upstream rejects our credentials (HTTP 401/403)
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when the resource is not found (HTTP 404)
	ErrNotFound = errors.New("resource not found")

	// ErrUnprocessable is returned when the upstream refuses the entity (HTTP 422)
	ErrUnprocessable = errors.New("unprocessable request")

	// ErrServiceUnavailable is returned when the API service is unavailable (HTTP 5xx, timeout)
	ErrServiceUnavailable = errors.New("api service unavailable")
)
