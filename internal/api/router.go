package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paymux/config"
	"paymux/internal/api/handlers"
	"paymux/internal/tenant"
	"paymux/pkg/health"
	"paymux/pkg/metrics"
)

// Version is reported by the service info endpoint.
const Version = "2.1.0"

type Router struct {
	payment        *handlers.PaymentHandler
	tenants        *handlers.TenantHandler
	odoo           *handlers.OdooHandler
	registry       *tenant.Registry
	healthRegistry *health.Registry
	cfg            config.Config
}

func (r *Router) SetUp(engine *gin.Engine) {
	auth := APIKeyAuth(r.cfg.APIKey)

	// Service info + health checks (Kubernetes-style)
	engine.GET("/", r.info)
	engine.GET("/health/live", health.LivenessHandler())
	engine.GET("/health/ready", health.ReadinessHandler(r.healthRegistry, health.DefaultTimeout))

	// Prometheus metrics
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	// Storefront flow. Commit stays open, Webpay redirects the buyer there
	// without any of our headers.
	engine.POST("/webpay/init", auth, ResolveTenant(r.registry), r.payment.Init)
	engine.GET("/webpay/commit", r.payment.Commit)
	engine.POST("/webpay/commit", r.payment.Commit)

	// Manual operations + reads
	engine.GET("/payments", auth, r.payment.Filter)
	engine.GET("/payments/events", auth, r.payment.Events)
	engine.GET("/payments/search", auth, r.payment.Search)
	engine.GET("/payments/:buy_order", auth, r.payment.Get)
	engine.GET("/payments/:buy_order/status", auth, r.payment.LiveStatus)
	engine.GET("/tenants", auth, r.tenants.List)
	engine.POST("/tenants/reload", auth, r.tenants.Reload)

	// ERP utilities, additionally signed
	odooGroup := engine.Group("/odoo", auth, HMACAuth(r.cfg.HMACSecret, r.cfg.TimestampTolerance))
	{
		odooGroup.GET("/health", r.odoo.Health)
		odooGroup.POST("/sync-order", r.odoo.SyncOrder)
		odooGroup.GET("/orders", r.odoo.Orders)
		odooGroup.GET("/orders/:order_id", r.odoo.GetOrder)
	}
}

func (r *Router) info(c *gin.Context) {
	active := r.registry.Active()
	names := make([]string, 0, len(active))
	for _, t := range active {
		names = append(names, t.Name)
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"service":       "paymux",
		"version":       Version,
		"tenants_count": len(active),
		"tenants":       names,
	})
}

func NewRouter(
	paymentHandler *handlers.PaymentHandler,
	tenantHandler *handlers.TenantHandler,
	odooHandler *handlers.OdooHandler,
	registry *tenant.Registry,
	healthRegistry *health.Registry,
	cfg config.Config,
) *Router {
	return &Router{
		payment:        paymentHandler,
		tenants:        tenantHandler,
		odoo:           odooHandler,
		registry:       registry,
		healthRegistry: healthRegistry,
		cfg:            cfg,
	}
}
