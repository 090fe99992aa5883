// Package odoo implements the JSON-RPC 2.0 client for tenant Odoo instances:
// authentication, sale-order lookup and the post-payment order updates.
// Credentials are per call; one client serves every tenant.
package odoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"paymux/internal/external/apiclient"
	"paymux/internal/security"
)

// Credentials locate and authenticate against one tenant's Odoo.
type Credentials struct {
	URL      string
	Database string
	Username string
	Password string
}

type Config struct {
	Timeout time.Duration
	// InternalToken is attached as X-Internal-Token on every request when set.
	InternalToken  string
	RetryAttempts  int
	RetryBaseDelay time.Duration
	RetryMaxDelay  time.Duration
}

type Client struct {
	http          *http.Client
	retry         apiclient.RetryConfig
	internalToken string
	seq           atomic.Int64

	// Odoo uids are stable numeric user ids, safe to cache per credentials.
	mu   sync.Mutex
	uids map[string]int
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
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
		http:          &http.Client{Timeout: cfg.Timeout},
		retry:         retry,
		internalToken: cfg.InternalToken,
		uids:          make(map[string]int),
	}
}

// Authenticate resolves the numeric uid for the credentials, caching it for
// subsequent calls. Bad credentials make Odoo answer false instead of a uid.
func (c *Client) Authenticate(ctx context.Context, creds Credentials) (int, error) {
	key := creds.URL + "|" + creds.Database + "|" + creds.Username

	c.mu.Lock()
	uid, ok := c.uids[key]
	c.mu.Unlock()
	if ok {
		return uid, nil
	}

	var result any
	err := c.call(ctx, creds.URL, rpcParams{
		Service: "common",
		Method:  "authenticate",
		Args:    []any{creds.Database, creds.Username, creds.Password, map[string]any{}},
	}, &result)
	if err != nil {
		return 0, err
	}

	id, ok := result.(float64)
	if !ok || id <= 0 {
		return 0, fmt.Errorf("%w: user %s on %s", ErrAuthFailed, creds.Username, creds.Database)
	}

	uid = int(id)
	c.mu.Lock()
	c.uids[key] = uid
	c.mu.Unlock()

	return uid, nil
}

// Version calls the unauthenticated common.version endpoint, used for
// connectivity diagnostics.
func (c *Client) Version(ctx context.Context, baseURL string) (string, error) {
	var result struct {
		ServerVersion string `json:"server_version"`
	}
	if err := c.call(ctx, baseURL, rpcParams{Service: "common", Method: "version", Args: []any{}}, &result); err != nil {
		return "", err
	}

	return result.ServerVersion, nil
}

func (c *Client) executeKw(ctx context.Context, creds Credentials, model, method string, args []any, kwargs map[string]any, result any) error {
	uid, err := c.Authenticate(ctx, creds)
	if err != nil {
		return err
	}

	callArgs := []any{creds.Database, uid, creds.Password, model, method, args}
	if kwargs != nil {
		callArgs = append(callArgs, kwargs)
	}

	return c.call(ctx, creds.URL, rpcParams{Service: "object", Method: "execute_kw", Args: callArgs}, result)
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      int64     `json:"id"`
}

type rpcParams struct {
	Service string `json:"service"`
	Method  string `json:"method"`
	Args    []any  `json:"args"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// describe prefers the detailed server-side message that Odoo tucks into
// error.data over the generic envelope message.
func (e *rpcError) describe() string {
	if len(e.Data) > 0 {
		var data struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		}
		if json.Unmarshal(e.Data, &data) == nil && data.Message != "" {
			return data.Message
		}
	}

	return e.Message
}

func (c *Client) call(ctx context.Context, baseURL string, params rpcParams, result any) error {
	payload := rpcRequest{JSONRPC: "2.0", Method: "call", Params: params, ID: c.seq.Add(1)}

	j, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal rpc request: %w", err)
	}

	endpoint := strings.TrimRight(baseURL, "/") + "/jsonrpc"

	var rpcResp rpcResponse
	err = apiclient.DoWithRetry(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(j))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.internalToken != "" {
			req.Header.Set(security.HeaderInternalToken, c.internalToken)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("%w: %v", apiclient.ErrServiceUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: status %d", apiclient.ErrServiceUnavailable, resp.StatusCode)
		}
		if resp.StatusCode/100 != 2 {
			return fmt.Errorf("%w: status %d", apiclient.ErrBadRequest, resp.StatusCode)
		}

		rpcResp = rpcResponse{}
		if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
			return fmt.Errorf("decode rpc response: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if rpcResp.Error != nil {
		return fmt.Errorf("%w: %s", ErrRPC, rpcResp.Error.describe())
	}

	if result != nil && len(rpcResp.Result) > 0 {
		if err := json.Unmarshal(rpcResp.Result, result); err != nil {
			return fmt.Errorf("decode rpc result: %w", err)
		}
	}

	return nil
}
