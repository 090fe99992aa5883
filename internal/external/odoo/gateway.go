package odoo

import (
	"context"
	"errors"

	"paymux/internal/domain/payment"
	"paymux/internal/tenant"
)

// Gateway adapts the Odoo client to the payment domain port, addressing each
// call to the tenant's own ERP instance.
type Gateway struct {
	client *Client
}

var _ payment.OrdersGateway = (*Gateway)(nil)

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) FindOrder(ctx context.Context, t tenant.Tenant, criteria payment.OrderCriteria) (*payment.SaleOrderRef, error) {
	order, err := g.client.FindOrder(ctx, credentialsFor(t), OrderCriteria{
		CustomerName: criteria.CustomerName,
		Amount:       criteria.Amount,
		Date:         criteria.Date,
	})
	if errors.Is(err, ErrOrderNotFound) {
		return nil, payment.ErrOrderNotMatched
	}
	if err != nil {
		return nil, err
	}

	return &payment.SaleOrderRef{
		ID:          order.ID,
		Name:        order.Name,
		State:       order.State,
		AmountTotal: order.AmountTotal,
	}, nil
}

func (g *Gateway) ConfirmOrder(ctx context.Context, t tenant.Tenant, orderID int64) error {
	return g.client.ConfirmOrder(ctx, credentialsFor(t), orderID)
}

func (g *Gateway) AnnotateOrder(ctx context.Context, t tenant.Tenant, orderID int64, note string) error {
	return g.client.AnnotateOrder(ctx, credentialsFor(t), orderID, note)
}

func credentialsFor(t tenant.Tenant) Credentials {
	return Credentials{
		URL:      t.Odoo.URL,
		Database: t.Odoo.Database,
		Username: t.Odoo.Username,
		Password: t.Odoo.Password,
	}
}
