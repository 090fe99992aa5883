package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paymux/internal/api/handlers"
	"paymux/internal/security"
	"paymux/internal/tenant"
)

func testRegistry(t *testing.T, tenants ...tenant.Tenant) *tenant.Registry {
	t.Helper()

	reg, err := tenant.Load(tenant.StaticSource(tenants...))
	require.NoError(t, err)
	return reg
}

func fullTenant(id string, origins ...string) tenant.Tenant {
	return tenant.Tenant{
		ID:      id,
		Name:    id,
		Enabled: true,
		Origins: origins,
		Odoo: tenant.OdooCredentials{
			URL:      "https://" + id + ".odoo.test",
			Database: id,
			Username: "api@" + id + ".test",
			Password: "secret",
		},
		Webpay: tenant.WebpayCredentials{
			ProviderID:      1,
			PaymentMethodID: 2,
			IntegrationType: tenant.IntegrationTest,
		},
	}
}

// resolveProbe mounts the middleware in front of a handler that records the
// tenant the request resolved to.
func resolveProbe(registry *tenant.Registry) (*gin.Engine, func() *tenant.Tenant) {
	gin.SetMode(gin.TestMode)

	var resolved *tenant.Tenant
	var called bool

	engine := gin.New()
	engine.POST("/probe", ResolveTenant(registry), func(c *gin.Context) {
		called = true
		resolved = handlers.ResolvedTenant(c)
		c.Status(http.StatusOK)
	})

	return engine, func() *tenant.Tenant {
		if !called {
			return nil
		}
		return resolved
	}
}

func TestResolveTenant(t *testing.T) {
	registry := testRegistry(t,
		fullTenant("acme", "https://shop.acme.cl", "https://*.acme.cl"),
		fullTenant("globex", "https://store.globex.cl"),
	)

	t.Run("resolves the tenant behind the origin header", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Header.Set("Origin", "https://shop.acme.cl")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resolved())
		assert.Equal(t, "acme", resolved().ID)
	})

	t.Run("origins compare case-insensitively", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Header.Set("Origin", "HTTPS://SHOP.ACME.CL/")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resolved())
		assert.Equal(t, "acme", resolved().ID)
	})

	t.Run("falls back to the referer origin", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Header.Set("Referer", "https://store.globex.cl/shop/cart?step=pay")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resolved())
		assert.Equal(t, "globex", resolved().ID)
	})

	t.Run("wildcard origins match subdomains", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Header.Set("Origin", "https://outlet.acme.cl")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, resolved())
		assert.Equal(t, "acme", resolved().ID)
	})

	t.Run("refuses origins off the allow-list", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Nil(t, resolved())
	})

	t.Run("passes local requests through unresolved", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Host = "localhost:3000"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, resolved())
	})

	t.Run("a null origin counts as absent", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Host = "127.0.0.1:3000"
		req.Header.Set("Origin", "null")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, resolved())
	})

	t.Run("requires an origin on public hosts", func(t *testing.T) {
		engine, resolved := resolveProbe(registry)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Host = "pay.example.com"
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Nil(t, resolved())
	})

	t.Run("fails closed when no tenant is enabled", func(t *testing.T) {
		empty := testRegistry(t)
		engine, resolved := resolveProbe(empty)

		req := httptest.NewRequest(http.MethodPost, "/probe", nil)
		req.Header.Set("Origin", "https://shop.acme.cl")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Nil(t, resolved())
	})
}

func TestAPIKeyAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newEngine := func(key string) *gin.Engine {
		engine := gin.New()
		engine.GET("/probe", APIKeyAuth(key), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return engine
	}

	t.Run("matching key passes", func(t *testing.T) {
		engine := newEngine("sekret")

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(security.HeaderAPIKey, "sekret")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong key is refused", func(t *testing.T) {
		engine := newEngine("sekret")

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set(security.HeaderAPIKey, "guess")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing key is refused", func(t *testing.T) {
		engine := newEngine("sekret")

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty configured key disables the check", func(t *testing.T) {
		engine := newEngine("")

		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHMACAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	const secret = "signing-secret"

	var seenBody []byte
	engine := gin.New()
	engine.POST("/probe", HMACAuth(secret, time.Minute), func(c *gin.Context) {
		seenBody, _ = io.ReadAll(c.Request.Body)
		c.Status(http.StatusOK)
	})

	signedRequest := func(body []byte, at time.Time) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/probe", bytes.NewReader(body))
		for k, v := range security.SignedHeaders(secret, "", body, at) {
			req.Header.Set(k, v)
		}
		return req
	}

	t.Run("valid signature passes and the body survives", func(t *testing.T) {
		seenBody = nil
		body := []byte(`{"buy_order":"Ana_100_20260825"}`)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, signedRequest(body, time.Now()))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, body, seenBody, "the handler must still see the body the middleware consumed")
	})

	t.Run("tampered body is refused", func(t *testing.T) {
		req := signedRequest([]byte(`{"amount":100}`), time.Now())
		req.Body = io.NopCloser(bytes.NewReader([]byte(`{"amount":999}`)))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing signature is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/probe", bytes.NewReader([]byte(`{}`)))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("stale timestamp is refused", func(t *testing.T) {
		req := signedRequest([]byte(`{}`), time.Now().Add(-5*time.Minute))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("empty secret disables the check", func(t *testing.T) {
		open := gin.New()
		open.POST("/probe", HMACAuth("", time.Minute), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/probe", bytes.NewReader([]byte(`{}`)))
		w := httptest.NewRecorder()
		open.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	registry := testRegistry(t, fullTenant("acme", "https://shop.acme.cl"))

	engine := gin.New()
	engine.Use(CORSMiddleware(registry))
	engine.POST("/webpay/init", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("preflight answers for an allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/webpay/init", nil)
		req.Header.Set("Origin", "https://shop.acme.cl")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "https://shop.acme.cl", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), security.HeaderAPIKey)
		assert.Equal(t, "Origin", w.Header().Get("Vary"))
	})

	t.Run("preflight stays silent for unknown origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/webpay/init", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("plain requests carry the allow headers through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/webpay/init", nil)
		req.Header.Set("Origin", "https://shop.acme.cl")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://shop.acme.cl", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
