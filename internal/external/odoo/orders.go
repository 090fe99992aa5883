package odoo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

type SaleOrder struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	State         string  `json:"state"`
	AmountTotal   float64 `json:"amount_total"`
	Partner       Partner `json:"partner"`
	DateOrder     string  `json:"date_order"`
	InvoiceStatus string  `json:"invoice_status"`
	Note          string  `json:"note,omitempty"`
}

type Partner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrderCriteria narrows a sale-order search; zero-valued fields are skipped.
type OrderCriteria struct {
	CustomerName string
	Amount       float64
	Date         string // YYYY-MM-DD, matched over the whole day
}

var orderFields = []string{"id", "name", "state", "amount_total", "partner_id", "date_order", "invoice_status"}

// FindOrder returns the first sale order matching the criteria, or
// ErrOrderNotFound when nothing matches.
func (c *Client) FindOrder(ctx context.Context, creds Credentials, criteria OrderCriteria) (*SaleOrder, error) {
	domain := make([]any, 0, 4)
	if criteria.CustomerName != "" {
		domain = append(domain, []any{"partner_id", "ilike", criteria.CustomerName})
	}
	if criteria.Amount > 0 {
		domain = append(domain, []any{"amount_total", "=", criteria.Amount})
	}
	if criteria.Date != "" {
		domain = append(domain,
			[]any{"date_order", ">=", criteria.Date + " 00:00:00"},
			[]any{"date_order", "<=", criteria.Date + " 23:59:59"},
		)
	}
	if len(domain) == 0 {
		return nil, fmt.Errorf("%w: no search criteria", ErrOrderNotFound)
	}

	var rows []saleOrderRow
	err := c.executeKw(ctx, creds, "sale.order", "search_read", []any{domain},
		map[string]any{"fields": orderFields, "limit": 1}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: customer %q amount %v date %q",
			ErrOrderNotFound, criteria.CustomerName, criteria.Amount, criteria.Date)
	}

	order := rows[0].toOrder()

	return &order, nil
}

// GetOrder reads one sale order by id, including its note.
func (c *Client) GetOrder(ctx context.Context, creds Credentials, orderID int64) (*SaleOrder, error) {
	fields := append(append([]string{}, orderFields...), "note")

	var rows []saleOrderRow
	err := c.executeKw(ctx, creds, "sale.order", "read", []any{[]any{orderID}},
		map[string]any{"fields": fields}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, orderID)
	}

	order := rows[0].toOrder()

	return &order, nil
}

// RecentOrders lists the latest sale orders, newest first.
func (c *Client) RecentOrders(ctx context.Context, creds Credentials, limit int) ([]SaleOrder, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []saleOrderRow
	err := c.executeKw(ctx, creds, "sale.order", "search_read", []any{[]any{}},
		map[string]any{"fields": orderFields, "limit": limit, "order": "date_order desc"}, &rows)
	if err != nil {
		return nil, err
	}

	orders := make([]SaleOrder, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, row.toOrder())
	}

	return orders, nil
}

// ConfirmOrder runs the sale.order confirmation workflow action.
func (c *Client) ConfirmOrder(ctx context.Context, creds Credentials, orderID int64) error {
	return c.executeKw(ctx, creds, "sale.order", "action_confirm", []any{[]any{orderID}}, nil, nil)
}

// AnnotateOrder overwrites the order note.
func (c *Client) AnnotateOrder(ctx context.Context, creds Credentials, orderID int64, note string) error {
	return c.executeKw(ctx, creds, "sale.order", "write",
		[]any{[]any{orderID}, map[string]any{"note": note}}, nil, nil)
}

// UpdateOrderStatus finds an order by name and runs the workflow action
// matching the requested status.
func (c *Client) UpdateOrderStatus(ctx context.Context, creds Credentials, orderName, status string) error {
	var ids []int64
	err := c.executeKw(ctx, creds, "sale.order", "search",
		[]any{[]any{[]any{"name", "=", orderName}}}, map[string]any{"limit": 1}, &ids)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: name %s", ErrOrderNotFound, orderName)
	}

	var action string
	switch strings.ToLower(status) {
	case "confirmed", "sale":
		action = "action_confirm"
	case "cancelled", "cancel":
		action = "action_cancel"
	case "draft":
		action = "action_draft"
	default:
		return fmt.Errorf("unsupported order status %q", status)
	}

	return c.executeKw(ctx, creds, "sale.order", action, []any{ids}, nil, nil)
}

// saleOrderRow decodes Odoo's JSON-RPC row shape: unset char fields come back
// as boolean false, and many2one fields as [id, display_name] tuples.
type saleOrderRow struct {
	ID            int64           `json:"id"`
	Name          any             `json:"name"`
	State         any             `json:"state"`
	AmountTotal   float64         `json:"amount_total"`
	PartnerID     json.RawMessage `json:"partner_id"`
	DateOrder     any             `json:"date_order"`
	InvoiceStatus any             `json:"invoice_status"`
	Note          any             `json:"note"`
}

func (r saleOrderRow) toOrder() SaleOrder {
	return SaleOrder{
		ID:            r.ID,
		Name:          asString(r.Name),
		State:         asString(r.State),
		AmountTotal:   r.AmountTotal,
		Partner:       decodePartner(r.PartnerID),
		DateOrder:     asString(r.DateOrder),
		InvoiceStatus: asString(r.InvoiceStatus),
		Note:          asString(r.Note),
	}
}

func asString(v any) string {
	s, _ := v.(string)

	return s
}

func decodePartner(raw json.RawMessage) Partner {
	if len(raw) == 0 {
		return Partner{}
	}

	var tuple []any
	if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) == 0 {
		return Partner{}
	}

	var p Partner
	if id, ok := tuple[0].(float64); ok {
		p.ID = int64(id)
	}
	if len(tuple) > 1 {
		if name, ok := tuple[1].(string); ok {
			p.Name = name
		}
	}

	return p
}
