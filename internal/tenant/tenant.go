// Package tenant implements the multi-tenant registry: per-tenant Odoo and
// Webpay credentials keyed by the browser origins allowed to use them.
package tenant

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

type IntegrationType string

const (
	IntegrationTest          IntegrationType = "TEST"
	IntegrationCertification IntegrationType = "CERTIFICATION"
	IntegrationProduction    IntegrationType = "PRODUCTION"
)

// OdooCredentials locate one tenant's ERP instance for JSON-RPC calls.
type OdooCredentials struct {
	URL      string `json:"url"`
	Database string `json:"database"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// WebpayCredentials carry the tenant's payment-provider identity. ProviderID
// and PaymentMethodID are the acquirer and payment-method records configured
// on the Odoo side; CommerceCode and APIKey are required outside TEST, where
// the published Transbank integration credentials apply.
type WebpayCredentials struct {
	ProviderID      int             `json:"provider_id"`
	PaymentMethodID int             `json:"payment_method_id"`
	IntegrationType IntegrationType `json:"integration_type"`
	CommerceCode    string          `json:"commerce_code"`
	APIKey          string          `json:"-"`
}

func (w WebpayCredentials) IsProduction() bool {
	return w.IntegrationType == IntegrationProduction
}

type Tenant struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Origins  []string          `json:"origins"`
	Odoo     OdooCredentials   `json:"odoo"`
	Webpay   WebpayCredentials `json:"webpay"`
	Enabled  bool              `json:"enabled"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// MatchesOrigin reports whether the given request origin is on the tenant's
// allow-list. Patterns may contain '*' wildcards.
func (t Tenant) MatchesOrigin(origin string) bool {
	norm := NormalizeOrigin(origin)
	if norm == "" {
		return false
	}

	for _, allowed := range t.Origins {
		if allowed == norm {
			return true
		}
		if strings.Contains(allowed, "*") && wildcardRegexp(allowed).MatchString(norm) {
			return true
		}
	}

	return false
}

// SuccessURL is the storefront confirmation page the buyer lands on after an
// authorized payment.
func (t Tenant) SuccessURL(buyOrder string) string {
	return fmt.Sprintf("%s/shop/confirmation?status=success&order=%s", t.Odoo.URL, url.QueryEscape(buyOrder))
}

// PaymentStatusURL is the storefront payment page annotated with a
// non-success outcome (rejected, cancelled, error).
func (t Tenant) PaymentStatusURL(status string) string {
	return fmt.Sprintf("%s/shop/payment?status=%s", t.Odoo.URL, url.QueryEscape(status))
}

func (t Tenant) validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: tenant with empty id", ErrConfigMalformed)
	}

	switch t.Webpay.IntegrationType {
	case IntegrationTest, IntegrationCertification, IntegrationProduction:
	default:
		return fmt.Errorf("%w: tenant %q has unknown integration_type %q", ErrConfigMalformed, t.ID, t.Webpay.IntegrationType)
	}

	// Disabled tenants may carry incomplete credentials while being set up.
	if !t.Enabled {
		return nil
	}

	if missing := t.missingCredentials(); len(missing) > 0 {
		return fmt.Errorf("%w: tenant %q missing %s", ErrConfigMalformed, t.ID, strings.Join(missing, ", "))
	}

	if t.Webpay.IntegrationType != IntegrationTest && (t.Webpay.CommerceCode == "" || t.Webpay.APIKey == "") {
		return fmt.Errorf("%w: tenant %q requires commerce_code and api_key for %s",
			ErrConfigMalformed, t.ID, t.Webpay.IntegrationType)
	}

	return nil
}

func (t Tenant) missingCredentials() []string {
	var missing []string

	if t.Odoo.URL == "" {
		missing = append(missing, "odoo.url")
	}
	if t.Odoo.Database == "" {
		missing = append(missing, "odoo.database")
	}
	if t.Odoo.Username == "" {
		missing = append(missing, "odoo.username")
	}
	if t.Odoo.Password == "" {
		missing = append(missing, "odoo.password")
	}
	if t.Webpay.ProviderID <= 0 {
		missing = append(missing, "webpay.provider_id")
	}
	if t.Webpay.PaymentMethodID <= 0 {
		missing = append(missing, "webpay.payment_method_id")
	}

	return missing
}

// NormalizeOrigin lowercases an origin and strips trailing slashes so header
// values and configured origins compare equal.
func NormalizeOrigin(origin string) string {
	return strings.ToLower(strings.TrimRight(strings.TrimSpace(origin), "/"))
}

// SanitizeID reduces a raw tenant identifier to [0-9a-z-]. An identifier with
// nothing left becomes "tenant".
func SanitizeID(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(raw)) {
		if (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "tenant"
	}
	return b.String()
}

func wildcardRegexp(pattern string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(NormalizeOrigin(pattern))
	return regexp.MustCompile("^" + strings.ReplaceAll(quoted, `\*`, ".*") + "$")
}
