//go:build !integration

package odoo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcEnvelope struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  struct {
		Service string `json:"service"`
		Method  string `json:"method"`
		Args    []any  `json:"args"`
	} `json:"params"`
	ID int64 `json:"id"`
}

func readEnvelope(t *testing.T, r *http.Request) rpcEnvelope {
	t.Helper()

	var env rpcEnvelope
	require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
	require.Equal(t, "2.0", env.JSONRPC)
	require.Equal(t, "call", env.Method)

	return env
}

func writeResult(w http.ResponseWriter, id int64, result any) {
	_ = json.NewEncoder(w).Encode(map[string]any{"jsonrpc": "2.0", "id": id, "result": result})
}

func writeFault(w http.ResponseWriter, id int64, message, detail string) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]any{
			"code":    200,
			"message": message,
			"data":    map[string]any{"name": "odoo.exceptions.ValidationError", "message": detail},
		},
	})
}

func testOdooClient() *Client {
	return NewClient(Config{
		Timeout:        5 * time.Second,
		InternalToken:  "internal-123",
		RetryAttempts:  1,
		RetryBaseDelay: 10 * time.Millisecond,
	})
}

func credsFor(server *httptest.Server) Credentials {
	return Credentials{URL: server.URL, Database: "acme", Username: "bot@acme.cl", Password: "pw"}
}

func TestClient_FindOrder(t *testing.T) {
	t.Run("builds domain and decodes row", func(t *testing.T) {
		authCalls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/jsonrpc", r.URL.Path)
			assert.Equal(t, "internal-123", r.Header.Get("X-Internal-Token"))

			env := readEnvelope(t, r)
			switch env.Params.Service + "." + env.Params.Method {
			case "common.authenticate":
				authCalls++
				assert.Equal(t, []any{"acme", "bot@acme.cl", "pw", map[string]any{}}, env.Params.Args)
				writeResult(w, env.ID, 7)
			case "object.execute_kw":
				args := env.Params.Args
				require.Len(t, args, 7)
				assert.Equal(t, "acme", args[0])
				assert.EqualValues(t, 7, args[1])
				assert.Equal(t, "pw", args[2])
				assert.Equal(t, "sale.order", args[3])
				assert.Equal(t, "search_read", args[4])

				domain := args[5].([]any)[0].([]any)
				require.Len(t, domain, 4)
				assert.Equal(t, []any{"partner_id", "ilike", "Maria Lopez"}, domain[0])
				assert.Equal(t, []any{"amount_total", "=", float64(25000)}, domain[1])
				assert.Equal(t, []any{"date_order", ">=", "2026-08-15 00:00:00"}, domain[2])
				assert.Equal(t, []any{"date_order", "<=", "2026-08-15 23:59:59"}, domain[3])

				kwargs := args[6].(map[string]any)
				assert.EqualValues(t, 1, kwargs["limit"])

				writeResult(w, env.ID, []map[string]any{{
					"id":             5,
					"name":           "S00005",
					"state":          "draft",
					"amount_total":   25000.0,
					"partner_id":     []any{9, "Maria Lopez"},
					"date_order":     "2026-08-15 10:21:33",
					"invoice_status": false,
				}})
			default:
				t.Fatalf("unexpected rpc call %s.%s", env.Params.Service, env.Params.Method)
			}
		}))
		defer server.Close()

		client := testOdooClient()

		got, err := client.FindOrder(context.Background(), credsFor(server), OrderCriteria{
			CustomerName: "Maria Lopez",
			Amount:       25000,
			Date:         "2026-08-15",
		})

		require.NoError(t, err)
		assert.EqualValues(t, 5, got.ID)
		assert.Equal(t, "S00005", got.Name)
		assert.Equal(t, "draft", got.State)
		assert.Equal(t, Partner{ID: 9, Name: "Maria Lopez"}, got.Partner)
		assert.Equal(t, "", got.InvoiceStatus)

		// uid is cached, second call must not re-authenticate
		_, err = client.FindOrder(context.Background(), credsFor(server), OrderCriteria{
			CustomerName: "Maria Lopez",
			Amount:       25000,
			Date:         "2026-08-15",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, authCalls)
	})

	t.Run("no match yields ErrOrderNotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env := readEnvelope(t, r)
			if env.Params.Method == "authenticate" {
				writeResult(w, env.ID, 7)
				return
			}
			writeResult(w, env.ID, []map[string]any{})
		}))
		defer server.Close()

		_, err := testOdooClient().FindOrder(context.Background(), credsFor(server), OrderCriteria{CustomerName: "Nadie"})

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("empty criteria short-circuits", func(t *testing.T) {
		_, err := testOdooClient().FindOrder(context.Background(), Credentials{URL: "http://unused"}, OrderCriteria{})

		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestClient_Authenticate(t *testing.T) {
	t.Run("rejected credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env := readEnvelope(t, r)
			writeResult(w, env.ID, false)
		}))
		defer server.Close()

		_, err := testOdooClient().Authenticate(context.Background(), credsFor(server))

		assert.ErrorIs(t, err, ErrAuthFailed)
	})
}

func TestClient_RPCFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env := readEnvelope(t, r)
		if env.Params.Method == "authenticate" {
			writeResult(w, env.ID, 7)
			return
		}
		writeFault(w, env.ID, "Odoo Server Error", "Invalid field 'bogus' on model 'sale.order'")
	}))
	defer server.Close()

	err := testOdooClient().ConfirmOrder(context.Background(), credsFor(server), 5)

	require.ErrorIs(t, err, ErrRPC)
	assert.Contains(t, err.Error(), "Invalid field 'bogus'")
}

func TestClient_ConfirmAndAnnotate(t *testing.T) {
	var confirmed, annotated bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env := readEnvelope(t, r)
		if env.Params.Method == "authenticate" {
			writeResult(w, env.ID, 7)
			return
		}

		args := env.Params.Args
		switch args[4] {
		case "action_confirm":
			confirmed = true
			assert.Equal(t, []any{[]any{float64(5)}}, args[5])
			writeResult(w, env.ID, true)
		case "write":
			annotated = true
			posArgs := args[5].([]any)
			assert.Equal(t, []any{float64(5)}, posArgs[0])
			assert.Equal(t, map[string]any{"note": "Pago procesado vía Webpay - Orden: maria_25000_20260815"}, posArgs[1])
			writeResult(w, env.ID, true)
		default:
			t.Fatalf("unexpected method %v", args[4])
		}
	}))
	defer server.Close()

	client := testOdooClient()
	creds := credsFor(server)

	require.NoError(t, client.ConfirmOrder(context.Background(), creds, 5))
	require.NoError(t, client.AnnotateOrder(context.Background(), creds, 5, "Pago procesado vía Webpay - Orden: maria_25000_20260815"))
	assert.True(t, confirmed)
	assert.True(t, annotated)
}

func TestClient_UpdateOrderStatus(t *testing.T) {
	t.Run("cancel by name", func(t *testing.T) {
		var actioned string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env := readEnvelope(t, r)
			switch env.Params.Method {
			case "authenticate":
				writeResult(w, env.ID, 7)
				return
			}

			args := env.Params.Args
			switch args[4] {
			case "search":
				writeResult(w, env.ID, []int64{12})
			case "action_cancel":
				actioned = "action_cancel"
				assert.Equal(t, []any{[]any{float64(12)}}, args[5])
				writeResult(w, env.ID, true)
			}
		}))
		defer server.Close()

		err := testOdooClient().UpdateOrderStatus(context.Background(), credsFor(server), "S00012", "cancelled")

		require.NoError(t, err)
		assert.Equal(t, "action_cancel", actioned)
	})

	t.Run("unsupported status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			env := readEnvelope(t, r)
			switch env.Params.Method {
			case "authenticate":
				writeResult(w, env.ID, 7)
			default:
				writeResult(w, env.ID, []int64{12})
			}
		}))
		defer server.Close()

		err := testOdooClient().UpdateOrderStatus(context.Background(), credsFor(server), "S00012", "paused")

		assert.ErrorContains(t, err, "unsupported order status")
	})
}

func TestClient_Version(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env := readEnvelope(t, r)
		assert.Equal(t, "common", env.Params.Service)
		assert.Equal(t, "version", env.Params.Method)
		writeResult(w, env.ID, map[string]any{"server_version": "17.0"})
	}))
	defer server.Close()

	got, err := testOdooClient().Version(context.Background(), server.URL)

	require.NoError(t, err)
	assert.Equal(t, "17.0", got)
}
