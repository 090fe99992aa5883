package handlers

import (
	"github.com/gin-gonic/gin"

	"paymux/internal/tenant"
)

// TenantKey is the gin context key the origin middleware stores the resolved
// tenant under.
const TenantKey = "tenant"

// ResolvedTenant returns the tenant the origin middleware resolved for this
// request, or nil when the request came in without one.
func ResolvedTenant(c *gin.Context) *tenant.Tenant {
	v, ok := c.Get(TenantKey)
	if !ok {
		return nil
	}

	t, ok := v.(tenant.Tenant)
	if !ok {
		return nil
	}

	return &t
}
