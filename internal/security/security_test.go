package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifySignature(t *testing.T) {
	t.Parallel()

	const secret = "shh"
	body := []byte(`{"amount":25000}`)
	now := time.Unix(1_700_000_000, 0)

	sign := func(ts string) string { return Sign(secret, body, ts) }

	tests := []struct {
		name      string
		body      []byte
		timestamp string
		signature string
		wantErr   error
	}{
		{
			name:      "valid",
			body:      body,
			timestamp: "1700000000",
			signature: sign("1700000000"),
		},
		{
			name:      "drift within tolerance",
			body:      body,
			timestamp: "1699999800",
			signature: sign("1699999800"),
		},
		{
			name:      "stale timestamp",
			body:      body,
			timestamp: "1699999000",
			signature: sign("1699999000"),
			wantErr:   ErrStaleTimestamp,
		},
		{
			name:      "future timestamp",
			body:      body,
			timestamp: "1700001000",
			signature: sign("1700001000"),
			wantErr:   ErrStaleTimestamp,
		},
		{
			name:      "garbage timestamp",
			body:      body,
			timestamp: "not-a-number",
			signature: "whatever",
			wantErr:   ErrInvalidTimestamp,
		},
		{
			name:      "tampered body",
			body:      []byte(`{"amount":99999}`),
			timestamp: "1700000000",
			signature: sign("1700000000"),
			wantErr:   ErrBadSignature,
		},
		{
			name:      "wrong signature",
			body:      body,
			timestamp: "1700000000",
			signature: "deadbeef",
			wantErr:   ErrBadSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySignature(secret, tt.body, tt.timestamp, tt.signature, DefaultTolerance, now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSignedHeaders(t *testing.T) {
	t.Parallel()

	body := []byte(`{"buy_order":"x"}`)
	now := time.Unix(1_700_000_000, 0)

	t.Run("full set", func(t *testing.T) {
		headers := SignedHeaders("shh", "key-123", body, now)

		require.Equal(t, "1700000000", headers[HeaderTimestamp])
		assert.Equal(t, "key-123", headers[HeaderAPIKey])
		assert.NoError(t, VerifySignature("shh", body, headers[HeaderTimestamp], headers[HeaderSignature], DefaultTolerance, now))
	})

	t.Run("unsigned without secret", func(t *testing.T) {
		headers := SignedHeaders("", "", body, now)

		assert.NotContains(t, headers, HeaderSignature)
		assert.NotContains(t, headers, HeaderAPIKey)
		assert.Contains(t, headers, HeaderTimestamp)
	})
}

func TestEqualAPIKey(t *testing.T) {
	t.Parallel()

	assert.True(t, EqualAPIKey("abc", "abc"))
	assert.False(t, EqualAPIKey("abc", "abd"))
	assert.False(t, EqualAPIKey("", "abc"))
}
