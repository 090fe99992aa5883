package payment

import (
	"context"
	"time"

	"paymux/internal/tenant"
)

//go:generate mockgen -source ports.go -destination mock_ports.go -package payment

type PaymentRepo interface {
	TxPaymentRepo
	InTransaction(ctx context.Context, fn func(repo TxPaymentRepo) error) error
}

type TxPaymentRepo interface {
	CreatePayment(ctx context.Context, payment Payment) error
	GetPayments(ctx context.Context, filter *PaymentsQuery) ([]Payment, error)
	// GetPaymentByBuyOrder returns the most recent journal row for the buy
	// order. Retried purchases reuse the same buy order.
	GetPaymentByBuyOrder(ctx context.Context, buyOrder string) (*Payment, error)
	GetPaymentByToken(ctx context.Context, token string) (*Payment, error)

	UpdateResult(ctx context.Context, update PaymentUpdate) error
	UpdateOdooRef(ctx context.Context, token string, orderID int64, orderName string) error
}

// Gateway opens, commits and inspects card transactions with the payment
// provider using the tenant's own merchant credentials.
type Gateway interface {
	Create(ctx context.Context, t tenant.Tenant, req GatewayCreateRequest) (GatewayCreateResponse, error)
	Commit(ctx context.Context, t tenant.Tenant, token string) (GatewayResult, error)
	Status(ctx context.Context, t tenant.Tenant, token string) (GatewayResult, error)
}

type GatewayCreateRequest struct {
	BuyOrder  string
	SessionID string
	Amount    int64
	ReturnURL string
}

type GatewayCreateResponse struct {
	Token string
	URL   string
}

type GatewayResult struct {
	Authorized        bool
	Status            string
	BuyOrder          string
	SessionID         string
	Amount            int64
	AuthorizationCode string
	PaymentTypeCode   string
	ResponseCode      *int32
	CardNumber        string
	TransactionDate   string
}

// OrdersGateway reaches into the tenant's ERP to find and confirm the sale
// order behind a payment.
type OrdersGateway interface {
	// FindOrder returns ErrOrderNotMatched when no sale order fits the criteria.
	FindOrder(ctx context.Context, t tenant.Tenant, criteria OrderCriteria) (*SaleOrderRef, error)
	ConfirmOrder(ctx context.Context, t tenant.Tenant, orderID int64) error
	AnnotateOrder(ctx context.Context, t tenant.Tenant, orderID int64, note string) error
}

type OrderCriteria struct {
	CustomerName string
	Amount       float64
	Date         string
}

type SaleOrderRef struct {
	ID          int64
	Name        string
	State       string
	AmountTotal float64
}

// Indexer mirrors payment events into the search backend. Implementations
// must tolerate replays of the same event.
type Indexer interface {
	IndexEvent(ctx context.Context, event PaymentEvent) error
	SearchEvents(ctx context.Context, query SearchQuery) ([]PaymentEvent, error)
}

type SearchQuery struct {
	Text      string
	TenantIDs []string
	Kinds     []PaymentEventKind
	TimeFrom  *time.Time
	TimeTo    *time.Time
	Limit     int
}

// CommittedDispatcher hands an authorized payment over for ERP
// synchronization. Implementations may run it inline or through a broker.
type CommittedDispatcher interface {
	DispatchCommitted(ctx context.Context, cp CommittedPayment) error
}

// CommittedPayment is the handoff payload between commit and ERP sync.
type CommittedPayment struct {
	Token    string `json:"token"`
	BuyOrder string `json:"buy_order"`
	TenantID string `json:"tenant_id"`
}
