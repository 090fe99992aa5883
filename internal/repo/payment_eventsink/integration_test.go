//go:build integration
// +build integration

package payment_eventsink_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"paymux/internal/domain/payment"
	"paymux/internal/repo/payment_eventsink"
	"paymux/internal/testinfra"
	"paymux/pkg/postgres"

	"github.com/stretchr/testify/require"
)

// journalBase anchors seeded event timestamps, one minute apart per event.
var journalBase = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func seedEvent(t *testing.T, tx postgres.Executor, event payment.NewPaymentEvent) *payment.PaymentEvent {
	t.Helper()

	repo := payment_eventsink.NewPgPaymentEventRepo(tx, pool.Builder)
	created, err := repo.CreatePaymentEvent(context.Background(), event)
	require.NoError(t, err)

	return created
}

// seedJournal inserts n initialized events through the repo, one minute
// apart, so ordering over (created_at, id) is deterministic. Tokens carry
// the tenant ID to keep seeds from different tests off each other's
// uniqueness key.
func seedJournal(t *testing.T, tx postgres.Executor, n int, tenantID string) []*payment.PaymentEvent {
	t.Helper()

	events := make([]*payment.PaymentEvent, 0, n)
	for i := 0; i < n; i++ {
		created := seedEvent(t, tx, payment.NewPaymentEvent{
			Token:     fmt.Sprintf("tok-%s-%03d", tenantID, i),
			BuyOrder:  fmt.Sprintf("seed-%02d_4990_20250310", i),
			TenantID:  tenantID,
			Kind:      payment.EventPaymentInitialized,
			Data:      []byte(fmt.Sprintf(`{"seq": %d}`, i)),
			CreatedAt: journalBase.Add(time.Duration(i) * time.Minute),
		})
		events = append(events, created)
	}

	return events
}

var pool *postgres.Postgres

func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := testinfra.NewPostgres(ctx)
	if err != nil {
		panic(fmt.Sprintf("Failed to start postgres container: %v", err))
	}

	pool = pgContainer.Pool

	code := m.Run()

	pgContainer.Cleanup(ctx)
	os.Exit(code)
}
