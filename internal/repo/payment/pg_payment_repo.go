package payment_repo

import (
	"context"
	"fmt"

	"paymux/internal/domain/payment"
	"paymux/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var paymentColumns = []string{
	"id", "token", "buy_order", "tenant_id", "session_id", "amount",
	"customer_hint", "order_date", "status", "authorization_code",
	"payment_type_code", "response_code", "card_number",
	"odoo_order_id", "odoo_order_name", "created_at", "updated_at",
}

// PgPaymentRepo is the main repository
type PgPaymentRepo struct {
	pg *postgres.Postgres
	repo
}

func NewPgPaymentRepo(pg *postgres.Postgres) payment.PaymentRepo {
	return &PgPaymentRepo{
		pg:   pg,
		repo: repo{db: pg.Pool, builder: pg.Builder},
	}
}

func (r *PgPaymentRepo) InTransaction(ctx context.Context, fn func(repo payment.TxPaymentRepo) error) error {
	return r.pg.InTransaction(ctx, func(tx postgres.Executor) error {
		txRepo := &repo{db: tx, builder: r.pg.Builder}
		return fn(txRepo)
	})
}

type repo struct {
	db      postgres.Executor
	builder squirrel.StatementBuilderType
}

func (r *repo) CreatePayment(ctx context.Context, p payment.Payment) error {
	query, args, err := r.builder.Insert("payments").
		Columns(paymentColumns...).
		Values(p.ID, p.Token, p.BuyOrder, p.TenantID, p.SessionID, p.Amount,
			p.CustomerHint, p.OrderDate, p.Status, p.AuthorizationCode,
			p.PaymentTypeCode, p.ResponseCode, p.CardNumber,
			p.OdooOrderID, p.OdooOrderName, p.CreatedAt, p.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	_, err = r.db.Exec(ctx, query, args...)
	if postgres.IsPgErrorUniqueViolation(err) {
		return payment.ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *repo) GetPayments(ctx context.Context, query *payment.PaymentsQuery) ([]payment.Payment, error) {
	sql, args := r.buildPaymentsQuery(query)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments: %w", err)
	}
	defer rows.Close()

	return parsePaymentRows(rows)
}

// GetPaymentByBuyOrder returns the newest journal row for the buy order.
// Buy orders repeat when a buyer retries the same purchase.
func (r *repo) GetPaymentByBuyOrder(ctx context.Context, buyOrder string) (*payment.Payment, error) {
	query, args, err := r.builder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"buy_order": buyOrder}).
		OrderBy("created_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment by buy order query: %w", err)
	}

	return r.onePayment(ctx, query, args)
}

func (r *repo) GetPaymentByToken(ctx context.Context, token string) (*payment.Payment, error) {
	query, args, err := r.builder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get payment by token query: %w", err)
	}

	return r.onePayment(ctx, query, args)
}

func (r *repo) onePayment(ctx context.Context, query string, args []interface{}) (*payment.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payment: %w", err)
	}
	defer rows.Close()

	payments, err := parsePaymentRows(rows)
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, payment.ErrNotFound
	}

	return &payments[0], nil
}

// UpdateResult closes a journal row with the commit outcome. Only rows still
// in initialized move; settled rows are immutable. When the update carries no
// token the newest row for the buy order is targeted.
func (r *repo) UpdateResult(ctx context.Context, update payment.PaymentUpdate) error {
	b := r.builder.Update("payments").
		Set("status", update.Status).
		Set("authorization_code", update.AuthorizationCode).
		Set("payment_type_code", update.PaymentTypeCode).
		Set("response_code", update.ResponseCode).
		Set("card_number", update.CardNumber).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": payment.StatusInitialized})

	if update.Token != "" {
		b = b.Where(squirrel.Eq{"token": update.Token})
	} else {
		b = b.Where("id = (SELECT id FROM payments WHERE buy_order = ? ORDER BY created_at DESC, id DESC LIMIT 1)",
			update.BuyOrder)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build update result query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payment result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payment.ErrNotFound
	}
	return nil
}

func (r *repo) UpdateOdooRef(ctx context.Context, token string, orderID int64, orderName string) error {
	query, args, err := r.builder.Update("payments").
		Set("odoo_order_id", orderID).
		Set("odoo_order_name", orderName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update odoo ref query: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update payment odoo ref: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payment.ErrNotFound
	}
	return nil
}

func (r *repo) buildPaymentsQuery(q *payment.PaymentsQuery) (string, []interface{}) {
	query := r.builder.Select(paymentColumns...).From("payments")

	if len(q.BuyOrders) > 0 {
		query = query.Where(squirrel.Eq{"buy_order": q.BuyOrders})
	}

	if len(q.TenantIDs) > 0 {
		query = query.Where(squirrel.Eq{"tenant_id": q.TenantIDs})
	}

	if len(q.Statuses) > 0 {
		query = query.Where(squirrel.Eq{"status": q.Statuses})
	}

	if q.SortOrder == "asc" {
		query = query.OrderBy("created_at ASC", "id ASC")
	} else {
		query = query.OrderBy("created_at DESC", "id DESC")
	}

	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}

	sql, args, _ := query.ToSql()
	return sql, args
}

// Helper functions
func parsePaymentRows(rows pgx.Rows) ([]payment.Payment, error) {
	var payments []payment.Payment
	for rows.Next() {
		var p payment.Payment
		var rawStatus string
		err := rows.Scan(&p.ID, &p.Token, &p.BuyOrder, &p.TenantID, &p.SessionID, &p.Amount,
			&p.CustomerHint, &p.OrderDate, &rawStatus, &p.AuthorizationCode,
			&p.PaymentTypeCode, &p.ResponseCode, &p.CardNumber,
			&p.OdooOrderID, &p.OdooOrderName, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}

		status, err := payment.NewStatus(rawStatus)
		if err != nil {
			return nil, fmt.Errorf("invalid status in database: %w", err)
		}
		p.Status = status

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return payments, nil
}
