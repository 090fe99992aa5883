package payment

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymux/internal/messaging"
)

type capturingPublisher struct {
	published []messaging.Envelope
	err       error
}

func (p *capturingPublisher) Publish(_ context.Context, env messaging.Envelope) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, env)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func TestKafkaDispatcher_DispatchCommitted(t *testing.T) {
	t.Parallel()

	t.Run("should publish an envelope keyed by tenant", func(t *testing.T) {
		// given
		pub := &capturingPublisher{}
		d := NewKafkaDispatcher(pub)
		cp := CommittedPayment{Token: "tok-1", BuyOrder: "BO-1", TenantID: "acme"}

		// when
		err := d.DispatchCommitted(context.Background(), cp)

		// then
		require.NoError(t, err)
		require.Len(t, pub.published, 1)

		env := pub.published[0]
		assert.Equal(t, "acme", env.TenantID)
		assert.Equal(t, TypePaymentCommitted, env.Type)
		assert.NotEmpty(t, env.EventID)

		var decoded CommittedPayment
		require.NoError(t, json.Unmarshal(env.Payload, &decoded))
		assert.Equal(t, cp, decoded)
	})

	t.Run("should surface publish failures", func(t *testing.T) {
		// given
		pub := &capturingPublisher{err: errors.New("broker down")}
		d := NewKafkaDispatcher(pub)

		// when
		err := d.DispatchCommitted(context.Background(), CommittedPayment{TenantID: "acme"})

		// then
		assert.EqualError(t, err, "publish committed payment: broker down")
	})
}
