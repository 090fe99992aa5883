package api

import (
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"paymux/internal/api/handlers"
	"paymux/internal/tenant"
)

// ResolveTenant maps the request to a tenant through the origin allow-list.
// Referer covers top-level navigations that drop the Origin header. Local
// requests carrying neither pass through unresolved; server-to-server
// callers name the tenant in the payload instead.
func ResolveTenant(registry *tenant.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := requestOrigin(c.Request)
		if origin == "" {
			if isLocalHost(c.Request.Host) {
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "origin required"})
			return
		}

		t, err := registry.Resolve(origin)
		if err != nil {
			if errors.Is(err, tenant.ErrNoTenantsConfigured) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": err.Error()})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "origin not allowed"})
			return
		}

		c.Set(handlers.TenantKey, t)
		c.Next()
	}
}

// requestOrigin picks the effective origin: the Origin header when present,
// else the origin part of Referer.
func requestOrigin(r *http.Request) string {
	if o := r.Header.Get("Origin"); o != "" && o != "null" {
		return o
	}

	ref := r.Header.Get("Referer")
	if ref == "" {
		return ""
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}

	return u.Scheme + "://" + u.Host
}

func isLocalHost(host string) bool {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	switch strings.ToLower(host) {
	case "localhost", "127.0.0.1", "::1", "[::1]":
		return true
	}

	return false
}
