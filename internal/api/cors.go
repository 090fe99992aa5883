package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"paymux/internal/security"
	"paymux/internal/tenant"
	"paymux/pkg/correlation"
)

// CORSMiddleware answers browser preflights for storefront origins. The
// allow-list is the registry's enabled tenant origins, so it follows reloads
// without a restart.
func CORSMiddleware(registry *tenant.Registry) gin.HandlerFunc {
	allowHeaders := strings.Join([]string{
		"Content-Type",
		security.HeaderAPIKey,
		security.HeaderSignature,
		security.HeaderTimestamp,
		correlation.HeaderName,
	}, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, err := registry.Resolve(origin); err == nil {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				c.Header("Access-Control-Allow-Headers", allowHeaders)
				c.Header("Access-Control-Max-Age", "600")
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
