// Package webpay implements a Transbank Webpay Plus REST client (API v1.2)
// with per-call commerce credentials, so one client instance serves every
// tenant.
package webpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paymux/internal/external/apiclient"
)

const (
	integrationBaseURL = "https://webpay3gint.transbank.cl"
	productionBaseURL  = "https://webpay3g.transbank.cl"

	transactionsPath = "/rswebpaytransaction/api/webpay/v1.2/transactions"

	headerAPIKeyID     = "Tbk-Api-Key-Id"
	headerAPIKeySecret = "Tbk-Api-Key-Secret"
)

// Published Transbank integration-environment credentials, valid for any
// commerce running against the integration host.
const (
	IntegrationCommerceCode = "597055555532"
	IntegrationAPIKey       = "579B532A7440BB0C9079DED94D31EA1615BACEB56610332264630D42D0A36B1C"
)

// Credentials identify the commerce a call is made for. Production selects
// the live Transbank host; everything else goes to integration.
type Credentials struct {
	CommerceCode string
	APIKey       string
	Production   bool
}

// IntegrationCredentials returns the shared integration commerce identity
// used by TEST tenants that carry no commerce code of their own.
func IntegrationCredentials() Credentials {
	return Credentials{
		CommerceCode: IntegrationCommerceCode,
		APIKey:       IntegrationAPIKey,
	}
}

type Config struct {
	// BaseURL overrides the Transbank host, mainly for tests.
	BaseURL        string
	Timeout        time.Duration
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

type Client struct {
	baseURL string
	http    *http.Client
	retry   apiclient.RetryConfig
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 20 * time.Second
	}

	retry := apiclient.DefaultRetryConfig()
	if cfg.RetryAttempts > 0 {
		retry.MaxAttempts = cfg.RetryAttempts
	}
	if cfg.RetryBaseDelay > 0 {
		retry.BaseDelay = cfg.RetryBaseDelay
	}
	if cfg.RetryMaxDelay > 0 {
		retry.MaxDelay = cfg.RetryMaxDelay
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		retry:   retry,
	}
}

type CreateRequest struct {
	BuyOrder  string `json:"buy_order"`
	SessionID string `json:"session_id"`
	Amount    int64  `json:"amount"`
	ReturnURL string `json:"return_url"`
}

// CreateResponse carries the token and the form URL the buyer is sent to.
type CreateResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type CardDetail struct {
	CardNumber string `json:"card_number"`
}

type TransactionResult struct {
	VCI                string     `json:"vci"`
	Amount             float64    `json:"amount"`
	Status             string     `json:"status"`
	BuyOrder           string     `json:"buy_order"`
	SessionID          string     `json:"session_id"`
	CardDetail         CardDetail `json:"card_detail"`
	AccountingDate     string     `json:"accounting_date"`
	TransactionDate    string     `json:"transaction_date"`
	AuthorizationCode  string     `json:"authorization_code"`
	PaymentTypeCode    string     `json:"payment_type_code"`
	ResponseCode       *int       `json:"response_code"`
	InstallmentsNumber int        `json:"installments_number"`
}

// Authorized reports whether a committed transaction went through. Transbank
// marks success with status AUTHORIZED or response code 0.
func (r TransactionResult) Authorized() bool {
	return r.Status == "AUTHORIZED" || (r.ResponseCode != nil && *r.ResponseCode == 0)
}

// Create opens a transaction and returns the redirect token.
func (c *Client) Create(ctx context.Context, creds Credentials, req CreateRequest) (CreateResponse, error) {
	var out CreateResponse

	err := apiclient.DoWithRetry(ctx, c.retry, func() error {
		return c.do(ctx, creds, http.MethodPost, transactionsPath, req, &out)
	})
	if err != nil {
		return CreateResponse{}, fmt.Errorf("webpay create: %w", err)
	}

	return out, nil
}

// Commit captures the transaction after the buyer returns from the Webpay
// form. Committing an expired or aborted token yields ErrUnprocessable.
func (c *Client) Commit(ctx context.Context, creds Credentials, token string) (TransactionResult, error) {
	var out TransactionResult

	err := apiclient.DoWithRetry(ctx, c.retry, func() error {
		return c.do(ctx, creds, http.MethodPut, transactionsPath+"/"+url.PathEscape(token), nil, &out)
	})
	if err != nil {
		return TransactionResult{}, fmt.Errorf("webpay commit: %w", err)
	}

	return out, nil
}

// Status reads the current state of a transaction without committing it.
func (c *Client) Status(ctx context.Context, creds Credentials, token string) (TransactionResult, error) {
	var out TransactionResult

	err := apiclient.DoWithRetry(ctx, c.retry, func() error {
		return c.do(ctx, creds, http.MethodGet, transactionsPath+"/"+url.PathEscape(token), nil, &out)
	})
	if err != nil {
		return TransactionResult{}, fmt.Errorf("webpay status: %w", err)
	}

	return out, nil
}

func (c *Client) do(ctx context.Context, creds Credentials, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		j, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		body = bytes.NewReader(j)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(creds)+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerAPIKeyID, creds.CommerceCode)
	req.Header.Set(headerAPIKeySecret, creds.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apiclient.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if err := statusError(resp.StatusCode, raw); err != nil {
		return err
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) endpoint(creds Credentials) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	if creds.Production {
		return productionBaseURL
	}

	return integrationBaseURL
}

func statusError(code int, body []byte) error {
	switch {
	case code/100 == 2:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: %s", apiclient.ErrUnauthorized, body)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: %s", apiclient.ErrNotFound, body)
	case code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", apiclient.ErrUnprocessable, body)
	case code >= 500:
		return fmt.Errorf("%w: status %d: %s", apiclient.ErrServiceUnavailable, code, body)
	default:
		return fmt.Errorf("%w: status %d: %s", apiclient.ErrBadRequest, code, body)
	}
}
