package tenant

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenant_MatchesOrigin(t *testing.T) {
	t.Parallel()

	tn := Tenant{
		ID:      "acme",
		Origins: []string{"https://shop.acme.cl", "https://*.acme-stores.cl"},
	}

	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{name: "exact match", origin: "https://shop.acme.cl", want: true},
		{name: "trailing slash stripped", origin: "https://shop.acme.cl/", want: true},
		{name: "case insensitive", origin: "https://SHOP.Acme.CL", want: true},
		{name: "wildcard subdomain", origin: "https://santiago.acme-stores.cl", want: true},
		{name: "wildcard does not match bare apex", origin: "https://acme-stores.cl", want: false},
		{name: "unknown origin", origin: "https://evil.example.com", want: false},
		{name: "empty origin", origin: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tn.MatchesOrigin(tt.origin))
		})
	}
}

func TestTenant_MatchesOrigin_BareWildcard(t *testing.T) {
	t.Parallel()

	tn := Tenant{ID: "dev", Origins: []string{"*"}}

	assert.True(t, tn.MatchesOrigin("https://anything.example.com"))
	assert.True(t, tn.MatchesOrigin("http://localhost:3000"))
}

func TestTenant_RedirectURLs(t *testing.T) {
	t.Parallel()

	tn := Tenant{Odoo: OdooCredentials{URL: "https://erp.acme.cl"}}

	assert.Equal(t,
		"https://erp.acme.cl/shop/confirmation?status=success&order=maria_25000_20260815",
		tn.SuccessURL("maria_25000_20260815"),
	)
	assert.Equal(t,
		"https://erp.acme.cl/shop/payment?status=rejected",
		tn.PaymentStatusURL("rejected"),
	)
}

func TestNormalizeOrigin(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://shop.acme.cl", NormalizeOrigin(" https://Shop.Acme.cl// "))
	assert.Equal(t, "", NormalizeOrigin("   "))
}

func TestSanitizeID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "already clean", raw: "acme-retail", want: "acme-retail"},
		{name: "uppercase folded", raw: "Acme Retail 2", want: "acmeretail2"},
		{name: "symbols stripped", raw: "a_c.m+e!", want: "acme"},
		{name: "nothing left", raw: "___", want: "tenant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeID(tt.raw))
		})
	}
}

func TestEncodeSession(t *testing.T) {
	t.Parallel()

	t.Run("tags and sanitizes", func(t *testing.T) {
		got := EncodeSession("acme", "sess id/123")
		assert.Equal(t, "acme__sessid123", got)
	})

	t.Run("caps length", func(t *testing.T) {
		got := EncodeSession("acme", strings.Repeat("a", 100))
		assert.Len(t, got, 60)
		assert.True(t, strings.HasPrefix(got, "acme__"))
	})
}

func TestTenantIDFromSession(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "acme", TenantIDFromSession("acme__9f1c2d"))
	assert.Equal(t, "", TenantIDFromSession("9f1c2d"))
	assert.Equal(t, "", TenantIDFromSession(""))
}
