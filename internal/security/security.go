// Package security implements the shared-secret request authentication used
// between storefronts, this service, and the Odoo backend: API key equality,
// HMAC body signatures with a timestamp window, and outbound signed headers.
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strconv"
	"time"
)

const (
	HeaderAPIKey        = "X-API-Key"
	HeaderSignature     = "X-Signature"
	HeaderTimestamp     = "X-Timestamp"
	HeaderInternalToken = "X-Internal-Token"
)

// DefaultTolerance bounds how far a signed request's timestamp may drift.
const DefaultTolerance = 5 * time.Minute

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrStaleTimestamp   = errors.New("timestamp outside tolerance")
	ErrBadSignature     = errors.New("signature mismatch")
)

// Sign computes the hex HMAC-SHA256 over "body:timestamp".
func Sign(secret string, body []byte, timestamp string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	mac.Write([]byte(":"))
	mac.Write([]byte(timestamp))

	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks an inbound signed request. The timestamp must parse
// as unix seconds and lie within tolerance of now; the signature compare is
// constant time.
func VerifySignature(secret string, body []byte, timestamp, signature string, tolerance time.Duration, now time.Time) error {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return ErrInvalidTimestamp
	}

	drift := now.Unix() - ts
	if drift < 0 {
		drift = -drift
	}
	if time.Duration(drift)*time.Second > tolerance {
		return ErrStaleTimestamp
	}

	expected := Sign(secret, body, timestamp)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}

	return nil
}

// SignedHeaders builds the outbound headers for a server-to-server request.
// Empty secret or key leaves the corresponding header out.
func SignedHeaders(secret, apiKey string, body []byte, now time.Time) map[string]string {
	ts := strconv.FormatInt(now.Unix(), 10)

	headers := map[string]string{HeaderTimestamp: ts}
	if secret != "" {
		headers[HeaderSignature] = Sign(secret, body, ts)
	}
	if apiKey != "" {
		headers[HeaderAPIKey] = apiKey
	}

	return headers
}

// EqualAPIKey compares two API keys in constant time.
func EqualAPIKey(got, want string) bool {
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
