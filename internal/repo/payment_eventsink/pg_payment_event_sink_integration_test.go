//go:build integration
// +build integration

package payment_eventsink_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"paymux/internal/domain/payment"
	"paymux/internal/repo/payment_eventsink"
	"paymux/pkg/pointers"
	"paymux/pkg/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentEventIntegration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name        string
		seed        func(t *testing.T, tx postgres.Executor)
		event       payment.NewPaymentEvent
		expectError bool
		errorMsg    string
	}{
		{
			name: "Create payment event successfully",
			event: payment.NewPaymentEvent{
				Token:     "tok-journal-001",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentInitialized,
				Data:      []byte(`{"amount": 4990, "session_id": "s-77"}`),
				CreatedAt: journalBase,
			},
			expectError: false,
		},
		{
			name: "Create event without token before the gateway assigned one",
			event: payment.NewPaymentEvent{
				Token:     "",
				BuyOrder:  "Araya_12500_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentFailed,
				Data:      []byte(`{"reason": "webpay create call failed"}`),
				CreatedAt: journalBase,
			},
			expectError: false,
		},
		{
			name: "Create follow-up kind for the same token",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedEvent(t, tx, payment.NewPaymentEvent{
					Token:     "tok-journal-002",
					BuyOrder:  "Rojas_4990_20250310",
					TenantID:  "acme",
					Kind:      payment.EventPaymentInitialized,
					Data:      []byte(`{"amount": 4990}`),
					CreatedAt: journalBase,
				})
			},
			event: payment.NewPaymentEvent{
				Token:     "tok-journal-002",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentAuthorized,
				Data:      []byte(`{"response_code": 0}`),
				CreatedAt: journalBase.Add(time.Minute),
			},
			expectError: false,
		},
		{
			name: "Reject payload that is not valid JSON",
			event: payment.NewPaymentEvent{
				Token:     "tok-journal-003",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentInitialized,
				Data:      []byte(`not-json`),
				CreatedAt: journalBase,
			},
			expectError: true,
			errorMsg:    "invalid input syntax for type json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pool.SandboxTransaction(ctx, func(tx postgres.Executor) error {
				if tt.seed != nil {
					tt.seed(t, tx)
				}

				repo := payment_eventsink.NewPgPaymentEventRepo(tx, pool.Builder)
				createdEvent, err := repo.CreatePaymentEvent(ctx, tt.event)

				if tt.expectError {
					require.Error(t, err)
					require.Nil(t, createdEvent)
					if tt.errorMsg != "" {
						assert.Contains(t, err.Error(), tt.errorMsg)
					}
					// The failed insert aborted the transaction, so no
					// further statements run here.
					return nil
				}

				require.NoError(t, err)
				require.NotNil(t, createdEvent)
				assert.NotEmpty(t, createdEvent.EventID)
				assert.Equal(t, tt.event, createdEvent.NewPaymentEvent)

				retrievedEvent, err := repo.GetPaymentEventByID(ctx, createdEvent.EventID)
				require.NoError(t, err)
				require.NotNil(t, retrievedEvent)

				assertPaymentEventEqual(t, createdEvent, retrievedEvent)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestGetPaymentEventByIDIntegration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Get existing event by ID", func(t *testing.T) {
		err := pool.SandboxTransaction(ctx, func(tx postgres.Executor) error {
			created := seedEvent(t, tx, payment.NewPaymentEvent{
				Token:     "tok-byid-001",
				BuyOrder:  "Araya_12500_20250310",
				TenantID:  "globex",
				Kind:      payment.EventOrderSynced,
				Data:      []byte(`{"odoo_order_id": 4812}`),
				CreatedAt: journalBase,
			})

			repo := payment_eventsink.NewPgPaymentEventRepo(tx, pool.Builder)
			event, err := repo.GetPaymentEventByID(ctx, created.EventID)
			require.NoError(t, err)
			require.NotNil(t, event)

			assertPaymentEventEqual(t, created, event)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("Get non-existent event by ID", func(t *testing.T) {
		err := pool.SandboxTransaction(ctx, func(tx postgres.Executor) error {
			repo := payment_eventsink.NewPgPaymentEventRepo(tx, pool.Builder)
			event, err := repo.GetPaymentEventByID(ctx, "non_existent_event_id")

			require.Error(t, err)
			require.Nil(t, event)
			assert.Contains(t, err.Error(), "payment event not found")
			return nil
		})
		require.NoError(t, err)
	})
}

func TestGetPaymentEventsIntegration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name     string
		seed     func(t *testing.T, tx postgres.Executor)
		query    payment.PaymentEventQuery
		validate func(t *testing.T, result payment.PaymentEventPage)
	}{
		{
			name: "Get all events without filters, newest first",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedJournal(t, tx, 3, "acme")
			},
			query: payment.PaymentEventQuery{
				Limit: 100,
			},
			validate: func(t *testing.T, result payment.PaymentEventPage) {
				require.Len(t, result.Items, 3)
				assert.False(t, result.HasMore)
				assert.Empty(t, result.NextCursor)
				assert.True(t, result.Items[0].CreatedAt.After(result.Items[2].CreatedAt))
			},
		},
		{
			name: "Get events for specific tenant",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedJournal(t, tx, 3, "acme")
				seedJournal(t, tx, 2, "globex")
			},
			query: payment.PaymentEventQuery{
				TenantIDs: []string{"globex"},
				Limit:     100,
			},
			validate: func(t *testing.T, result payment.PaymentEventPage) {
				require.Len(t, result.Items, 2)
				for _, event := range result.Items {
					assert.Equal(t, "globex", event.TenantID)
				}
			},
		},
		{
			name: "Get events for specific buy order",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedJournal(t, tx, 3, "acme")
			},
			query: payment.PaymentEventQuery{
				BuyOrders: []string{"seed-01_4990_20250310"},
				Limit:     100,
			},
			validate: func(t *testing.T, result payment.PaymentEventPage) {
				require.Len(t, result.Items, 1)
				assert.Equal(t, "seed-01_4990_20250310", result.Items[0].BuyOrder)
				assert.Equal(t, "tok-acme-001", result.Items[0].Token)
			},
		},
		{
			name: "Get events for unknown tenant",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedJournal(t, tx, 3, "acme")
			},
			query: payment.PaymentEventQuery{
				TenantIDs: []string{"initech"},
				Limit:     100,
			},
			validate: func(t *testing.T, result payment.PaymentEventPage) {
				assert.Equal(t, 0, len(result.Items))
				assert.False(t, result.HasMore)
				assert.Empty(t, result.NextCursor)
			},
		},
		{
			name: "Filter by event kinds",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedEvent(t, tx, payment.NewPaymentEvent{
					Token: "tok-kinds-001", BuyOrder: "Rojas_4990_20250310", TenantID: "acme",
					Kind: payment.EventPaymentInitialized, Data: []byte(`{}`), CreatedAt: journalBase,
				})
				seedEvent(t, tx, payment.NewPaymentEvent{
					Token: "tok-kinds-001", BuyOrder: "Rojas_4990_20250310", TenantID: "acme",
					Kind: payment.EventPaymentAuthorized, Data: []byte(`{"response_code": 0}`), CreatedAt: journalBase.Add(time.Minute),
				})
				seedEvent(t, tx, payment.NewPaymentEvent{
					Token: "tok-kinds-002", BuyOrder: "Araya_12500_20250310", TenantID: "acme",
					Kind: payment.EventPaymentInitialized, Data: []byte(`{}`), CreatedAt: journalBase.Add(2 * time.Minute),
				})
				seedEvent(t, tx, payment.NewPaymentEvent{
					Token: "tok-kinds-002", BuyOrder: "Araya_12500_20250310", TenantID: "acme",
					Kind: payment.EventPaymentRejected, Data: []byte(`{"response_code": -1}`), CreatedAt: journalBase.Add(3 * time.Minute),
				})
				seedEvent(t, tx, payment.NewPaymentEvent{
					Token: "tok-kinds-001", BuyOrder: "Rojas_4990_20250310", TenantID: "acme",
					Kind: payment.EventOrderSynced, Data: []byte(`{"odoo_order_id": 4812}`), CreatedAt: journalBase.Add(4 * time.Minute),
				})
			},
			query: payment.PaymentEventQuery{
				Kinds: []payment.PaymentEventKind{payment.EventPaymentAuthorized, payment.EventPaymentRejected},
				Limit: 100,
			},
			validate: func(t *testing.T, result payment.PaymentEventPage) {
				require.Len(t, result.Items, 2)
				for _, event := range result.Items {
					assert.Contains(t, []payment.PaymentEventKind{payment.EventPaymentAuthorized, payment.EventPaymentRejected}, event.Kind)
				}
			},
		},
		{
			name: "Half-open time window keeps the lower bound and drops the upper",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedJournal(t, tx, 5, "acme")
			},
			query: payment.PaymentEventQuery{
				TimeFrom: pointers.Ptr(journalBase.Add(time.Minute)),
				TimeTo:   pointers.Ptr(journalBase.Add(3 * time.Minute)),
				Limit:    100,
			},
			validate: func(t *testing.T, result payment.PaymentEventPage) {
				require.Len(t, result.Items, 2)
				for _, event := range result.Items {
					assert.False(t, event.CreatedAt.Before(journalBase.Add(time.Minute)))
					assert.True(t, event.CreatedAt.Before(journalBase.Add(3*time.Minute)))
				}
			},
		},
		{
			name: "Default limit applied when not specified",
			seed: func(t *testing.T, tx postgres.Executor) {
				seedJournal(t, tx, 25, "acme")
			},
			query: payment.PaymentEventQuery{},
			validate: func(t *testing.T, result payment.PaymentEventPage) {
				assert.Equal(t, 10, len(result.Items))
				assert.True(t, result.HasMore)
				assert.NotEmpty(t, result.NextCursor)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pool.SandboxTransaction(ctx, func(tx postgres.Executor) error {
				tt.seed(t, tx)

				repo := payment_eventsink.NewPgPaymentEventRepo(tx, pool.Builder)
				result, err := repo.GetPaymentEvents(ctx, tt.query)

				require.NoError(t, err)
				tt.validate(t, result)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestGetPaymentEvents_CursorPagination(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name       string
		sortAsc    bool
		firstToken string
	}{
		{name: "Walk all pages descending", sortAsc: false, firstToken: "tok-walker-024"},
		{name: "Walk all pages ascending", sortAsc: true, firstToken: "tok-walker-000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pool.SandboxTransaction(ctx, func(tx postgres.Executor) error {
				seeded := seedJournal(t, tx, 25, "walker")
				repo := payment_eventsink.NewPgPaymentEventRepo(tx, pool.Builder)

				var (
					collected []payment.PaymentEvent
					cursor    string
					pages     int
				)
				for {
					page, err := repo.GetPaymentEvents(ctx, payment.PaymentEventQuery{
						Limit:   10,
						Cursor:  cursor,
						SortAsc: tt.sortAsc,
					})
					require.NoError(t, err)

					collected = append(collected, page.Items...)
					pages++

					if !page.HasMore {
						assert.Empty(t, page.NextCursor)
						break
					}
					require.NotEmpty(t, page.NextCursor)
					cursor = page.NextCursor
				}

				assert.Equal(t, 3, pages)
				require.Len(t, collected, len(seeded))
				assert.Equal(t, tt.firstToken, collected[0].Token)

				// No event repeated or skipped across page boundaries.
				seen := make(map[string]struct{}, len(collected))
				for _, event := range collected {
					seen[event.EventID] = struct{}{}
				}
				assert.Len(t, seen, len(seeded))

				for i := 1; i < len(collected); i++ {
					prev, cur := collected[i-1], collected[i]
					if tt.sortAsc {
						assert.False(t, cur.CreatedAt.Before(prev.CreatedAt))
					} else {
						assert.False(t, cur.CreatedAt.After(prev.CreatedAt))
					}
				}
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestCreatePaymentEvent_IdempotencyConstraint(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name                 string
		firstEvent           payment.NewPaymentEvent
		duplicateEvent       payment.NewPaymentEvent
		expectDuplicateError bool
	}{
		{
			name: "Duplicate kind for same token returns ErrEventAlreadyStored",
			firstEvent: payment.NewPaymentEvent{
				Token:     "tok-dup-001",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentAuthorized,
				Data:      []byte(`{"response_code": 0}`),
				CreatedAt: journalBase,
			},
			duplicateEvent: payment.NewPaymentEvent{
				Token:     "tok-dup-001",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentAuthorized,
				Data:      []byte(`{"response_code": 0, "redelivered": true}`),
				CreatedAt: journalBase.Add(5 * time.Minute),
			},
			expectDuplicateError: true,
		},
		{
			name: "Same kind for different tokens succeeds",
			firstEvent: payment.NewPaymentEvent{
				Token:     "tok-dup-002",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentAuthorized,
				Data:      []byte(`{"response_code": 0}`),
				CreatedAt: journalBase,
			},
			duplicateEvent: payment.NewPaymentEvent{
				Token:     "tok-dup-003",
				BuyOrder:  "Araya_12500_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentAuthorized,
				Data:      []byte(`{"response_code": 0}`),
				CreatedAt: journalBase.Add(time.Minute),
			},
			expectDuplicateError: false,
		},
		{
			name: "Different kind for same token succeeds",
			firstEvent: payment.NewPaymentEvent{
				Token:     "tok-dup-004",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentAuthorized,
				Data:      []byte(`{"response_code": 0}`),
				CreatedAt: journalBase,
			},
			duplicateEvent: payment.NewPaymentEvent{
				Token:     "tok-dup-004",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventOrderSynced,
				Data:      []byte(`{"odoo_order_id": 4812}`),
				CreatedAt: journalBase.Add(time.Minute),
			},
			expectDuplicateError: false,
		},
		{
			name: "Events without a token are never deduplicated",
			firstEvent: payment.NewPaymentEvent{
				Token:     "",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentFailed,
				Data:      []byte(`{"reason": "webpay create call failed"}`),
				CreatedAt: journalBase,
			},
			duplicateEvent: payment.NewPaymentEvent{
				Token:     "",
				BuyOrder:  "Rojas_4990_20250310",
				TenantID:  "acme",
				Kind:      payment.EventPaymentFailed,
				Data:      []byte(`{"reason": "webpay create call failed again"}`),
				CreatedAt: journalBase.Add(time.Minute),
			},
			expectDuplicateError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pool.SandboxTransaction(ctx, func(tx postgres.Executor) error {
				repo := payment_eventsink.NewPgPaymentEventRepo(tx, pool.Builder)

				firstCreated, err := repo.CreatePaymentEvent(ctx, tt.firstEvent)
				require.NoError(t, err)
				require.NotNil(t, firstCreated)

				// A unique violation aborts the transaction, so the duplicate
				// attempt stays the last statement inside the sandbox.
				duplicateCreated, err := repo.CreatePaymentEvent(ctx, tt.duplicateEvent)

				if tt.expectDuplicateError {
					require.Error(t, err)
					assert.True(t, errors.Is(err, payment.ErrEventAlreadyStored),
						"Expected ErrEventAlreadyStored, got: %v", err)
					assert.Nil(t, duplicateCreated)
				} else {
					require.NoError(t, err)
					require.NotNil(t, duplicateCreated)
					assert.Equal(t, tt.duplicateEvent.Token, duplicateCreated.Token)
					assert.Equal(t, tt.duplicateEvent.Kind, duplicateCreated.Kind)
				}

				return nil
			})
			require.NoError(t, err)
		})
	}
}

func assertPaymentEventEqual(t *testing.T, exp, act *payment.PaymentEvent) {
	t.Helper()
	assert.Equal(t, exp.EventID, act.EventID)
	assert.Equal(t, exp.Token, act.Token)
	assert.Equal(t, exp.BuyOrder, act.BuyOrder)
	assert.Equal(t, exp.TenantID, act.TenantID)
	assert.Equal(t, exp.Kind, act.Kind)
	assert.True(t, exp.CreatedAt.Equal(act.CreatedAt))
	assert.JSONEq(t, string(exp.Data), string(act.Data))
}
