package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"paymux/internal/tenant"
)

type TenantHandler struct {
	registry *tenant.Registry
}

func NewTenantHandler(registry *tenant.Registry) TenantHandler {
	return TenantHandler{registry: registry}
}

// List returns every loaded tenant. Passwords and API keys are tagged out of
// the JSON encoding, so the response is safe to expose to operators.
func (h *TenantHandler) List(c *gin.Context) {
	tenants := h.registry.All()

	c.JSON(http.StatusOK, gin.H{
		"source":  h.registry.Describe(),
		"count":   len(tenants),
		"active":  len(h.registry.Active()),
		"tenants": tenants,
	})
}

// Reload re-reads the tenant source. A failed reload keeps the previous
// tenants serving, so the handler reports the failure without downtime.
func (h *TenantHandler) Reload(c *gin.Context) {
	if err := h.registry.Reload(); err != nil {
		if errors.Is(err, tenant.ErrConfigNotFound) || errors.Is(err, tenant.ErrConfigMalformed) || errors.Is(err, tenant.ErrDuplicateOrigin) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "reloaded",
		"source": h.registry.Describe(),
		"active": len(h.registry.Active()),
	})
}
