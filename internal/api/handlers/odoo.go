package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paymux/internal/domain/payment"
	"paymux/internal/external/odoo"
	"paymux/internal/tenant"
)

// OdooHandler exposes the ERP utility endpoints: connectivity checks, manual
// resyncs and sale-order lookups against a tenant's own Odoo instance.
type OdooHandler struct {
	registry *tenant.Registry
	client   *odoo.Client
	payments *payment.PaymentService
}

func NewOdooHandler(registry *tenant.Registry, client *odoo.Client, payments *payment.PaymentService) OdooHandler {
	return OdooHandler{registry: registry, client: client, payments: payments}
}

type tenantHealth struct {
	TenantID string `json:"tenant_id"`
	URL      string `json:"url"`
	Version  string `json:"version,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// Health probes each tenant's Odoo: server version first, then an
// authenticated call with the tenant's credentials.
func (h *OdooHandler) Health(c *gin.Context) {
	tenants, err := h.selectTenants(c)
	if err != nil {
		h.tenantError(c, err)
		return
	}

	ctx := c.Request.Context()
	status := "ok"
	out := make([]tenantHealth, 0, len(tenants))
	for _, t := range tenants {
		th := tenantHealth{TenantID: t.ID, URL: t.Odoo.URL, Status: "ok"}

		version, err := h.client.Version(ctx, t.Odoo.URL)
		if err == nil {
			th.Version = version
			_, err = h.client.Authenticate(ctx, odooCredentials(t))
		}
		if err != nil {
			th.Status = "error"
			th.Error = err.Error()
			status = "degraded"
		}

		out = append(out, th)
	}

	c.JSON(http.StatusOK, gin.H{"status": status, "tenants": out})
}

type syncOrderRequest struct {
	BuyOrder string `json:"buy_order" binding:"required"`
}

// SyncOrder reruns the ERP sync for an authorized payment, for example after
// the tenant fixed the sale order that failed to match.
func (h *OdooHandler) SyncOrder(c *gin.Context) {
	var req syncOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing buy_order"})
		return
	}

	p, err := h.payments.ResyncPayment(c.Request.Context(), req.BuyOrder)
	if err != nil {
		if errors.Is(err, payment.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		} else if errors.Is(err, payment.ErrNotCommitted) {
			c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "success",
		"buy_order":       p.BuyOrder,
		"odoo_order_id":   p.OdooOrderID,
		"odoo_order_name": p.OdooOrderName,
	})
}

// Orders lists the tenant's most recent sale orders.
func (h *OdooHandler) Orders(c *gin.Context) {
	t, err := h.selectTenant(c)
	if err != nil {
		h.tenantError(c, err)
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid limit"})
		return
	}

	orders, err := h.client.RecentOrders(c.Request.Context(), odooCredentials(t), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenant_id": t.ID, "count": len(orders), "orders": orders})
}

// GetOrder fetches one sale order by its numeric Odoo id.
func (h *OdooHandler) GetOrder(c *gin.Context) {
	t, err := h.selectTenant(c)
	if err != nil {
		h.tenantError(c, err)
		return
	}

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "order_id must be numeric"})
		return
	}

	order, err := h.client.GetOrder(c.Request.Context(), odooCredentials(t), orderID)
	if err != nil {
		if errors.Is(err, odoo.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "not_found", "order_id": orderID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "found", "order": order})
}

// selectTenant picks the tenant named by ?tenant_id, defaulting to the only
// active tenant when exactly one is configured.
func (h *OdooHandler) selectTenant(c *gin.Context) (tenant.Tenant, error) {
	if id := c.Query("tenant_id"); id != "" {
		return h.registry.ByID(id)
	}

	active := h.registry.Active()
	if len(active) == 1 {
		return active[0], nil
	}

	return tenant.Tenant{}, fmt.Errorf("%w: tenant_id required", tenant.ErrTenantNotFound)
}

func (h *OdooHandler) selectTenants(c *gin.Context) ([]tenant.Tenant, error) {
	if id := c.Query("tenant_id"); id != "" {
		t, err := h.registry.ByID(id)
		if err != nil {
			return nil, err
		}
		return []tenant.Tenant{t}, nil
	}

	return h.registry.Active(), nil
}

func (h *OdooHandler) tenantError(c *gin.Context, err error) {
	if errors.Is(err, tenant.ErrTenantNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	if errors.Is(err, tenant.ErrTenantDisabled) {
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
}

func odooCredentials(t tenant.Tenant) odoo.Credentials {
	return odoo.Credentials{
		URL:      t.Odoo.URL,
		Database: t.Odoo.Database,
		Username: t.Odoo.Username,
		Password: t.Odoo.Password,
	}
}
