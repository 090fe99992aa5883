package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"paymux/internal/tenant"
	"paymux/pkg/logger"
)

type InitRequest struct {
	// TenantID forces the tenant for server-to-server calls. Browser calls
	// leave it empty and rely on the Origin header.
	TenantID     string `json:"tenant_id"`
	Amount       int64  `json:"amount" binding:"required"`
	CustomerName string `json:"customer_name"`
	OrderDate    string `json:"order_date"`
}

type InitResult struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
	TenantID  string `json:"tenant_id"`
	ReturnURL string `json:"return_url"`
}

// CommitCallback carries the parameters Webpay appends when it sends the
// buyer back. token_ws means the form was completed, TBK_TOKEN means the
// buyer aborted, neither means the form timed out.
type CommitCallback struct {
	TokenWS  string `form:"token_ws" json:"token_ws"`
	TBKToken string `form:"TBK_TOKEN" json:"TBK_TOKEN"`
	BuyOrder string `form:"TBK_ORDEN_COMPRA" json:"TBK_ORDEN_COMPRA"`
	Session  string `form:"TBK_ID_SESION" json:"TBK_ID_SESION"`
}

const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// CommitOutcome is what the commit callback hands back to the HTTP layer.
// RedirectURL points at the tenant's storefront page for the outcome.
type CommitOutcome struct {
	Status      string         `json:"status"`
	BuyOrder    string         `json:"buy_order"`
	TenantID    string         `json:"tenant_id"`
	RedirectURL string         `json:"redirect_url"`
	Result      *GatewayResult `json:"result,omitempty"`
}

type PaymentService struct {
	registry   *tenant.Registry
	repo       PaymentRepo
	gateway    Gateway
	orders     OrdersGateway
	events     EventSink
	indexer    Indexer
	dispatcher CommittedDispatcher
	returnURL  string
	l          *logger.Logger
}

func NewPaymentService(
	registry *tenant.Registry,
	repo PaymentRepo,
	gateway Gateway,
	orders OrdersGateway,
	events EventSink,
	returnURL string,
	l *logger.Logger,
) *PaymentService {
	return &PaymentService{
		registry:  registry,
		repo:      repo,
		gateway:   gateway,
		orders:    orders,
		events:    events,
		returnURL: returnURL,
		l:         l,
	}
}

// WithIndexer mirrors every stored event into the search backend.
func (s *PaymentService) WithIndexer(ix Indexer) *PaymentService {
	s.indexer = ix
	return s
}

// WithDispatcher routes ERP synchronization through the dispatcher instead
// of running it inline after commit.
func (s *PaymentService) WithDispatcher(d CommittedDispatcher) *PaymentService {
	s.dispatcher = d
	return s
}

func (s *PaymentService) InitPayment(ctx context.Context, resolved *tenant.Tenant, req InitRequest) (*InitResult, error) {
	t, err := s.initTenant(resolved, req.TenantID)
	if err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, req.Amount)
	}

	orderDate := req.OrderDate
	if orderDate == "" {
		orderDate = time.Now().UTC().Format("2006-01-02")
	}

	buyOrder := BuildBuyOrder(req.CustomerName, req.Amount, orderDate)
	sessionID := tenant.EncodeSession(t.ID, uuid.New().String())

	created, err := s.gateway.Create(ctx, t, GatewayCreateRequest{
		BuyOrder:  buyOrder,
		SessionID: sessionID,
		Amount:    req.Amount,
		ReturnURL: s.returnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("create webpay transaction: %w", err)
	}

	now := time.Now().UTC()
	p := Payment{
		ID:           uuid.New().String(),
		Token:        created.Token,
		BuyOrder:     buyOrder,
		TenantID:     t.ID,
		SessionID:    sessionID,
		Amount:       req.Amount,
		CustomerHint: req.CustomerName,
		OrderDate:    orderDate,
		Status:       StatusInitialized,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, fmt.Errorf("journal payment: %w", err)
	}

	s.recordEvent(ctx, eventFor(p, EventPaymentInitialized, initEventData{
		Amount:    req.Amount,
		SessionID: sessionID,
		ReturnURL: s.returnURL,
	}))

	return &InitResult{
		Token:     created.Token,
		URL:       created.URL,
		BuyOrder:  buyOrder,
		SessionID: sessionID,
		TenantID:  t.ID,
		ReturnURL: s.returnURL,
	}, nil
}

func (s *PaymentService) initTenant(resolved *tenant.Tenant, explicit string) (tenant.Tenant, error) {
	if explicit != "" {
		t, err := s.registry.ByID(explicit)
		if err != nil {
			return tenant.Tenant{}, fmt.Errorf("tenant %q: %w", explicit, err)
		}
		return t, nil
	}

	if resolved != nil {
		return *resolved, nil
	}

	return tenant.Tenant{}, ErrTenantUnresolved
}

// FinalizeCommit resolves the tenant behind a Webpay callback, settles the
// transaction and closes the journal row. Replayed callbacks for an already
// settled payment return the recorded outcome without touching Webpay again.
func (s *PaymentService) FinalizeCommit(ctx context.Context, cb CommitCallback) (CommitOutcome, error) {
	st, err := s.locateCallback(ctx, cb)
	if err != nil {
		return CommitOutcome{}, err
	}

	if st.journaled && st.p.Status.Terminal() {
		return s.outcomeFor(st, st.p.Status, nil), nil
	}

	if cb.TokenWS == "" {
		status := StatusFailed
		if cb.TBKToken != "" {
			status = StatusCancelled
		}
		s.closeJournal(ctx, st, PaymentUpdate{Token: st.p.Token, BuyOrder: st.p.BuyOrder, Status: status})
		s.recordEvent(ctx, eventFor(st.p, kindForStatus(status), cb))

		return s.outcomeFor(st, status, nil), nil
	}

	result, err := s.gateway.Commit(ctx, st.t, cb.TokenWS)
	if err != nil {
		s.l.ErrorCtx(ctx, "commit webpay transaction: buy_order=%s error=%v", st.p.BuyOrder, err)
		s.closeJournal(ctx, st, PaymentUpdate{Token: st.p.Token, BuyOrder: st.p.BuyOrder, Status: StatusFailed})
		s.recordEvent(ctx, eventFor(st.p, EventPaymentFailed, commitErrorData{Error: err.Error()}))

		return s.outcomeFor(st, StatusFailed, nil), nil
	}

	status := StatusRejected
	if result.Authorized {
		status = StatusAuthorized
	}

	s.closeJournal(ctx, st, PaymentUpdate{
		Token:             st.p.Token,
		BuyOrder:          st.p.BuyOrder,
		Status:            status,
		AuthorizationCode: result.AuthorizationCode,
		PaymentTypeCode:   result.PaymentTypeCode,
		ResponseCode:      result.ResponseCode,
		CardNumber:        result.CardNumber,
	})
	s.recordEvent(ctx, eventFor(st.p, kindForStatus(status), result))

	if status == StatusAuthorized {
		s.dispatchCommitted(ctx, st)
	}

	return s.outcomeFor(st, status, &result), nil
}

type commitState struct {
	t         tenant.Tenant
	p         Payment
	journaled bool
}

// locateCallback pins the callback to a tenant. The journal row wins when
// one exists, otherwise the session tag decodes the tenant so callbacks for
// transactions opened elsewhere still settle.
func (s *PaymentService) locateCallback(ctx context.Context, cb CommitCallback) (commitState, error) {
	var st commitState

	token := cb.TokenWS
	if token == "" {
		token = cb.TBKToken
	}

	var row *Payment
	if token != "" {
		p, err := s.repo.GetPaymentByToken(ctx, token)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return st, fmt.Errorf("load payment by token: %w", err)
		}
		row = p
	}
	if row == nil && cb.BuyOrder != "" {
		p, err := s.repo.GetPaymentByBuyOrder(ctx, cb.BuyOrder)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return st, fmt.Errorf("load payment by buy order: %w", err)
		}
		row = p
	}

	session := cb.Session
	if session == "" && row != nil {
		session = row.SessionID
	}

	tenantID := tenant.TenantIDFromSession(session)
	if tenantID == "" && row != nil {
		tenantID = row.TenantID
	}
	if tenantID == "" {
		return st, fmt.Errorf("%w: callback carries no tenant tag", ErrCallbackUnresolved)
	}

	t, err := s.registry.ByID(tenantID)
	if err != nil {
		return st, fmt.Errorf("%w: tenant %q: %v", ErrCallbackUnresolved, tenantID, err)
	}

	st.t = t
	if row != nil {
		st.p = *row
		st.journaled = true
	} else {
		st.p = Payment{Token: token, BuyOrder: cb.BuyOrder, TenantID: t.ID, SessionID: session}
	}

	return st, nil
}

func (s *PaymentService) closeJournal(ctx context.Context, st commitState, update PaymentUpdate) {
	if !st.journaled {
		return
	}
	if !st.p.Status.CanBeUpdatedTo(update.Status) {
		return
	}
	if err := s.repo.UpdateResult(ctx, update); err != nil {
		s.l.WarnCtx(ctx, "update payment journal: buy_order=%s status=%s error=%v", update.BuyOrder, update.Status, err)
	}
}

func (s *PaymentService) dispatchCommitted(ctx context.Context, st commitState) {
	cp := CommittedPayment{Token: st.p.Token, BuyOrder: st.p.BuyOrder, TenantID: st.t.ID}

	if s.dispatcher == nil {
		if err := s.ProcessCommitted(ctx, cp); err != nil {
			s.l.ErrorCtx(ctx, "sync committed payment: buy_order=%s error=%v", cp.BuyOrder, err)
		}
		return
	}

	if err := s.dispatcher.DispatchCommitted(ctx, cp); err != nil {
		s.l.ErrorCtx(ctx, "dispatch committed payment: buy_order=%s error=%v", cp.BuyOrder, err)
	}
}

func (s *PaymentService) outcomeFor(st commitState, status Status, result *GatewayResult) CommitOutcome {
	outcome := outcomeForStatus(status)

	redirect := st.t.PaymentStatusURL(outcome)
	if status == StatusAuthorized {
		redirect = st.t.SuccessURL(st.p.BuyOrder)
	}

	return CommitOutcome{
		Status:      outcome,
		BuyOrder:    st.p.BuyOrder,
		TenantID:    st.t.ID,
		RedirectURL: redirect,
		Result:      result,
	}
}

// ProcessCommitted confirms the matching sale order in the tenant's Odoo.
// A nil return means settled for the consumer, either synced or recorded as
// sync_failed. Errors mean the attempt should be retried.
func (s *PaymentService) ProcessCommitted(ctx context.Context, cp CommittedPayment) error {
	p, err := s.repo.GetPaymentByToken(ctx, cp.Token)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("load payment by token: %w", err)
	}

	t, err := s.registry.ByID(cp.TenantID)
	if err != nil {
		s.l.ErrorCtx(ctx, "sync tenant unavailable: tenant_id=%s buy_order=%s error=%v", cp.TenantID, cp.BuyOrder, err)
		s.recordEvent(ctx, s.syncEvent(cp, p, EventOrderSyncFailed, syncFailedEventData{Reason: "tenant unavailable: " + err.Error()}))
		return nil
	}

	criteria := syncCriteria(cp, p)

	ref, err := s.orders.FindOrder(ctx, t, criteria)
	if errors.Is(err, ErrOrderNotMatched) {
		s.l.WarnCtx(ctx, "sync found no sale order: buy_order=%s customer=%q amount=%v", cp.BuyOrder, criteria.CustomerName, criteria.Amount)
		s.recordEvent(ctx, s.syncEvent(cp, p, EventOrderSyncFailed, syncFailedEventData{Reason: "no sale order matched"}))
		return nil
	}
	if err != nil {
		return fmt.Errorf("find sale order: %w", err)
	}

	// An order past draft/sent was confirmed on an earlier attempt.
	if ref.State == "draft" || ref.State == "sent" {
		if err := s.orders.ConfirmOrder(ctx, t, ref.ID); err != nil {
			return fmt.Errorf("confirm sale order %d: %w", ref.ID, err)
		}
	}

	note := fmt.Sprintf("Pago procesado vía Webpay - Orden: %s", cp.BuyOrder)
	if err := s.orders.AnnotateOrder(ctx, t, ref.ID, note); err != nil {
		s.l.WarnCtx(ctx, "annotate sale order: order_id=%d error=%v", ref.ID, err)
	}

	if p != nil {
		if err := s.repo.UpdateOdooRef(ctx, cp.Token, ref.ID, ref.Name); err != nil {
			s.l.WarnCtx(ctx, "persist sale order ref: buy_order=%s error=%v", cp.BuyOrder, err)
		}
	}

	s.recordEvent(ctx, s.syncEvent(cp, p, EventOrderSynced, syncedEventData{
		OrderID:   ref.ID,
		OrderName: ref.Name,
		State:     ref.State,
	}))

	return nil
}

// ResyncPayment reruns the ERP sync for an authorized payment, for example
// after the tenant fixed the sale order that failed to match.
func (s *PaymentService) ResyncPayment(ctx context.Context, buyOrder string) (*Payment, error) {
	p, err := s.repo.GetPaymentByBuyOrder(ctx, buyOrder)
	if err != nil {
		return nil, fmt.Errorf("load payment: %w", err)
	}
	if p.Status != StatusAuthorized {
		return nil, fmt.Errorf("%w: payment is %s", ErrNotCommitted, p.Status)
	}

	err = s.ProcessCommitted(ctx, CommittedPayment{Token: p.Token, BuyOrder: p.BuyOrder, TenantID: p.TenantID})
	if err != nil {
		return nil, fmt.Errorf("resync payment: %w", err)
	}

	return s.repo.GetPaymentByBuyOrder(ctx, buyOrder)
}

func (s *PaymentService) GetPayments(ctx context.Context, query PaymentsQuery) ([]Payment, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	payments, err := s.repo.GetPayments(ctx, &query)
	if err != nil {
		return nil, fmt.Errorf("filter payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentService) GetPayment(ctx context.Context, buyOrder string) (*Payment, error) {
	p, err := s.repo.GetPaymentByBuyOrder(ctx, buyOrder)
	if err != nil {
		return nil, fmt.Errorf("get payment %s: %w", buyOrder, err)
	}
	return p, nil
}

func (s *PaymentService) GetPaymentEvents(ctx context.Context, query PaymentEventQuery) (PaymentEventPage, error) {
	page, err := s.events.GetPaymentEvents(ctx, query)
	if err != nil {
		return PaymentEventPage{}, fmt.Errorf("get payment events: %w", err)
	}
	return page, nil
}

// LiveStatus asks Webpay for the transaction state instead of the journal.
func (s *PaymentService) LiveStatus(ctx context.Context, buyOrder string) (GatewayResult, error) {
	p, err := s.repo.GetPaymentByBuyOrder(ctx, buyOrder)
	if err != nil {
		return GatewayResult{}, fmt.Errorf("load payment: %w", err)
	}

	t, err := s.registry.ByID(p.TenantID)
	if err != nil {
		return GatewayResult{}, fmt.Errorf("resolve tenant %q: %w", p.TenantID, err)
	}

	result, err := s.gateway.Status(ctx, t, p.Token)
	if err != nil {
		return GatewayResult{}, fmt.Errorf("query webpay status: %w", err)
	}
	return result, nil
}

func (s *PaymentService) SearchEvents(ctx context.Context, query SearchQuery) ([]PaymentEvent, error) {
	if s.indexer == nil {
		return nil, ErrSearchUnavailable
	}

	events, err := s.indexer.SearchEvents(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search payment events: %w", err)
	}
	return events, nil
}

// recordEvent funnels every audit write. Event storage must not break the
// payment flow, failures are logged and swallowed.
func (s *PaymentService) recordEvent(ctx context.Context, ev NewPaymentEvent) {
	stored, err := s.events.CreatePaymentEvent(ctx, ev)
	if errors.Is(err, ErrEventAlreadyStored) {
		s.l.DebugCtx(ctx, "payment event already stored: kind=%s token=%s", ev.Kind, ev.Token)
		return
	}
	if err != nil {
		s.l.ErrorCtx(ctx, "store payment event: kind=%s buy_order=%s error=%v", ev.Kind, ev.BuyOrder, err)
		return
	}

	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexEvent(ctx, *stored); err != nil {
		s.l.WarnCtx(ctx, "index payment event: event_id=%s error=%v", stored.EventID, err)
	}
}

func (s *PaymentService) syncEvent(cp CommittedPayment, p *Payment, kind PaymentEventKind, payload any) NewPaymentEvent {
	base := Payment{Token: cp.Token, BuyOrder: cp.BuyOrder, TenantID: cp.TenantID}
	if p != nil {
		base = *p
	}
	return eventFor(base, kind, payload)
}

// syncCriteria prefers the journal row and falls back to decoding the buy
// order for transactions this instance never journaled.
func syncCriteria(cp CommittedPayment, p *Payment) OrderCriteria {
	parts, _ := ParseBuyOrder(cp.BuyOrder)

	criteria := OrderCriteria{
		CustomerName: parts.CustomerHint,
		Amount:       float64(parts.Amount),
		Date:         parts.OrderDate,
	}
	if p == nil {
		return criteria
	}

	if p.CustomerHint != "" {
		criteria.CustomerName = p.CustomerHint
	}
	if p.Amount > 0 {
		criteria.Amount = float64(p.Amount)
	}
	if p.OrderDate != "" {
		criteria.Date = p.OrderDate
	}
	return criteria
}

func outcomeForStatus(status Status) string {
	switch status {
	case StatusAuthorized:
		return OutcomeSuccess
	case StatusRejected:
		return OutcomeRejected
	case StatusCancelled:
		return OutcomeCancelled
	default:
		return OutcomeError
	}
}

func kindForStatus(status Status) PaymentEventKind {
	switch status {
	case StatusAuthorized:
		return EventPaymentAuthorized
	case StatusRejected:
		return EventPaymentRejected
	case StatusCancelled:
		return EventPaymentCancelled
	default:
		return EventPaymentFailed
	}
}

type initEventData struct {
	Amount    int64  `json:"amount"`
	SessionID string `json:"session_id"`
	ReturnURL string `json:"return_url"`
}

type commitErrorData struct {
	Error string `json:"error"`
}

type syncedEventData struct {
	OrderID   int64  `json:"order_id"`
	OrderName string `json:"order_name"`
	State     string `json:"state"`
}

type syncFailedEventData struct {
	Reason string `json:"reason"`
}
