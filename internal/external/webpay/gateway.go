package webpay

import (
	"context"

	"paymux/internal/domain/payment"
	"paymux/internal/tenant"
)

// Gateway adapts the Webpay client to the payment domain port, selecting the
// tenant's merchant credentials on every call.
type Gateway struct {
	client *Client
}

var _ payment.Gateway = (*Gateway)(nil)

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Create(ctx context.Context, t tenant.Tenant, req payment.GatewayCreateRequest) (payment.GatewayCreateResponse, error) {
	res, err := g.client.Create(ctx, credentialsFor(t), CreateRequest{
		BuyOrder:  req.BuyOrder,
		SessionID: req.SessionID,
		Amount:    req.Amount,
		ReturnURL: req.ReturnURL,
	})
	if err != nil {
		return payment.GatewayCreateResponse{}, err
	}

	return payment.GatewayCreateResponse{Token: res.Token, URL: res.URL}, nil
}

func (g *Gateway) Commit(ctx context.Context, t tenant.Tenant, token string) (payment.GatewayResult, error) {
	res, err := g.client.Commit(ctx, credentialsFor(t), token)
	if err != nil {
		return payment.GatewayResult{}, err
	}

	return toGatewayResult(res), nil
}

func (g *Gateway) Status(ctx context.Context, t tenant.Tenant, token string) (payment.GatewayResult, error) {
	res, err := g.client.Status(ctx, credentialsFor(t), token)
	if err != nil {
		return payment.GatewayResult{}, err
	}

	return toGatewayResult(res), nil
}

// credentialsFor maps the tenant's webpay block onto wire credentials. TEST
// tenants without a commerce code of their own run on the published
// integration identity.
func credentialsFor(t tenant.Tenant) Credentials {
	if t.Webpay.CommerceCode == "" {
		return IntegrationCredentials()
	}

	return Credentials{
		CommerceCode: t.Webpay.CommerceCode,
		APIKey:       t.Webpay.APIKey,
		Production:   t.Webpay.IsProduction(),
	}
}

func toGatewayResult(r TransactionResult) payment.GatewayResult {
	var responseCode *int32
	if r.ResponseCode != nil {
		v := int32(*r.ResponseCode)
		responseCode = &v
	}

	return payment.GatewayResult{
		Authorized:        r.Authorized(),
		Status:            r.Status,
		BuyOrder:          r.BuyOrder,
		SessionID:         r.SessionID,
		Amount:            int64(r.Amount),
		AuthorizationCode: r.AuthorizationCode,
		PaymentTypeCode:   r.PaymentTypeCode,
		ResponseCode:      responseCode,
		CardNumber:        r.CardDetail.CardNumber,
		TransactionDate:   r.TransactionDate,
	}
}
