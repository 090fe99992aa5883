package payment_eventsink

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"paymux/internal/domain/payment"
	"paymux/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PgPaymentEventRepo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

var _ payment.EventSink = (*PgPaymentEventRepo)(nil)

func NewPgPaymentEventRepo(db postgres.Executor, builder squirrel.StatementBuilderType) *PgPaymentEventRepo {
	return &PgPaymentEventRepo{
		db:      db,
		builder: builder,
	}
}

func (r *PgPaymentEventRepo) CreatePaymentEvent(ctx context.Context, event payment.NewPaymentEvent) (*payment.PaymentEvent, error) {
	id := uuid.New().String()

	query, args, err := r.builder.Insert("payment_events").
		Columns("id", "token", "buy_order", "tenant_id", "kind", "data", "created_at").
		Values(id, event.Token, event.BuyOrder, event.TenantID, event.Kind, event.Data, event.CreatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if postgres.IsPgErrorUniqueViolation(err) {
		return nil, payment.ErrEventAlreadyStored
	}
	if err != nil {
		return nil, fmt.Errorf("create payment event: %w", err)
	}

	return &payment.PaymentEvent{
		EventID:         id,
		NewPaymentEvent: event,
	}, nil
}

func (r *PgPaymentEventRepo) GetPaymentEventByID(ctx context.Context, eventID string) (*payment.PaymentEvent, error) {
	query, args, err := r.builder.Select("id", "token", "buy_order", "tenant_id", "kind", "data", "created_at").
		From("payment_events").
		Where(squirrel.Eq{"id": eventID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment event by id query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payment event by id: %w", err)
	}
	defer rows.Close()

	events, err := parsePaymentEventRows(rows)
	if err != nil {
		return nil, fmt.Errorf("parse payment event: %w", err)
	}

	if len(events) == 0 {
		return nil, fmt.Errorf("payment event not found")
	}

	return &events[0], nil
}

func (r *PgPaymentEventRepo) GetPaymentEvents(ctx context.Context, query payment.PaymentEventQuery) (payment.PaymentEventPage, error) {
	if query.Limit <= 0 {
		query.Limit = 10
	}
	if query.Limit > 1000 {
		query.Limit = 1000
	}

	sqlQuery, args, err := r.buildPaymentEventPageQuery(query)
	if err != nil {
		return payment.PaymentEventPage{}, fmt.Errorf("build payment event query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return payment.PaymentEventPage{}, fmt.Errorf("query payment events: %w", err)
	}
	defer rows.Close()

	items, err := parsePaymentEventRows(rows)
	if err != nil {
		return payment.PaymentEventPage{}, fmt.Errorf("parse payment events: %w", err)
	}

	hasMore := len(items) > query.Limit
	if hasMore {
		items = items[:query.Limit] // trim the extra item queried to determine the existence of the following items
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		lastItem := items[len(items)-1]
		nextCursor = encodeEventCursor(eventCursor{
			EventID:   lastItem.EventID,
			CreatedAt: lastItem.CreatedAt,
		})
	}

	return payment.PaymentEventPage{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

type eventCursor struct {
	EventID   string    `json:"event_id"`
	CreatedAt time.Time `json:"created_at"`
}

func encodeEventCursor(c eventCursor) string {
	b, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(b)
}
func decodeEventCursor(s string) (eventCursor, error) {
	var c eventCursor
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return c, err
	}
	return c, json.Unmarshal(b, &c)
}

// SELECT id, token, buy_order, tenant_id, kind, data, created_at FROM payment_events
// WHERE
//
//	buy_order IN @BuyOrders
//	AND tenant_id IN @TenantIDs
//	AND kind IN @Kinds
//	AND created_at >= @TimeFrom
//	AND created_at < @TimeTo
//	AND (created_at, id) < (@cursor.CreatedAt, @cursor.EventID)
//
// ORDER BY created_at DESC/ASC, id DESC/ASC
// LIMIT @Limit+1
func (r *PgPaymentEventRepo) buildPaymentEventPageQuery(q payment.PaymentEventQuery) (string, []interface{}, error) {
	b := r.builder.Select("id", "token", "buy_order", "tenant_id", "kind", "data", "created_at").
		From("payment_events")

	if len(q.BuyOrders) > 0 {
		b = b.Where(squirrel.Eq{"buy_order": q.BuyOrders})
	}

	if len(q.TenantIDs) > 0 {
		b = b.Where(squirrel.Eq{"tenant_id": q.TenantIDs})
	}

	if len(q.Kinds) > 0 {
		b = b.Where(squirrel.Eq{"kind": q.Kinds})
	}

	if q.TimeFrom != nil {
		b = b.Where("created_at >= ?", q.TimeFrom.UTC())
	}

	if q.TimeTo != nil {
		b = b.Where("created_at < ?", q.TimeTo.UTC())
	}

	if q.Cursor != "" {
		cursor, err := decodeEventCursor(q.Cursor)
		if err != nil {
			return "", nil, fmt.Errorf("decode cursor: %w", err)
		}

		if q.SortAsc {
			b = b.Where("(created_at, id) > (?, ?)", cursor.CreatedAt.UTC(), cursor.EventID)
		} else {
			b = b.Where("(created_at, id) < (?, ?)", cursor.CreatedAt.UTC(), cursor.EventID)
		}
	}

	if q.SortAsc {
		b = b.OrderBy("created_at ASC", "id ASC")
	} else {
		b = b.OrderBy("created_at DESC", "id DESC")
	}

	b = b.Limit(uint64(q.Limit + 1))

	sql, args, _ := b.ToSql()
	return sql, args, nil
}

func parsePaymentEventRows(rows pgx.Rows) ([]payment.PaymentEvent, error) {
	var events []payment.PaymentEvent
	for rows.Next() {
		var e payment.PaymentEvent
		var rawKind string
		err := rows.Scan(&e.EventID, &e.Token, &e.BuyOrder, &e.TenantID, &rawKind, &e.Data, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan payment event row: %w", err)
		}

		e.Kind = payment.PaymentEventKind(rawKind)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment event rows: %w", err)
	}

	return events, nil
}
