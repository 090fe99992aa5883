package tenant

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source yields the raw tenant set a Registry is built from.
type Source interface {
	Load() ([]Tenant, error)
	// Describe names the source for logs and error reports.
	Describe() string
}

// Registry is the in-memory index over the tenant set. Reload swaps the whole
// index atomically, so a failed reload leaves the previous tenants serving.
type Registry struct {
	source Source

	mu        sync.RWMutex
	tenants   []Tenant
	byID      map[string]Tenant
	byOrigin  map[string]string
	wildcards []wildcardRoute
	active    int
}

type wildcardRoute struct {
	re       *regexp.Regexp
	tenantID string
}

// Load builds a Registry from the source, validating every tenant. Enabled
// tenants must carry complete Odoo and Webpay credentials, and no origin may
// be claimed by two enabled tenants.
func Load(src Source) (*Registry, error) {
	r := &Registry{source: src}
	if err := r.Reload(); err != nil {
		return nil, err
	}

	return r, nil
}

// Reload re-reads the source. On any error the registry keeps serving the
// previously loaded tenants.
func (r *Registry) Reload() error {
	tenants, err := r.source.Load()
	if err != nil {
		return err
	}

	idx, err := buildIndex(tenants)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.tenants = tenants
	r.byID = idx.byID
	r.byOrigin = idx.byOrigin
	r.wildcards = idx.wildcards
	r.active = idx.active
	r.mu.Unlock()

	return nil
}

// Resolve maps a request origin to the single enabled tenant allowed to use
// it. Exact matches win; '*' patterns are scanned afterwards.
func (r *Registry) Resolve(origin string) (Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == 0 {
		return Tenant{}, ErrNoTenantsConfigured
	}

	norm := NormalizeOrigin(origin)
	if norm == "" {
		return Tenant{}, ErrOriginNotRecognized
	}

	if id, ok := r.byOrigin[norm]; ok {
		return r.byID[id], nil
	}

	for _, w := range r.wildcards {
		if w.re.MatchString(norm) {
			return r.byID[w.tenantID], nil
		}
	}

	return Tenant{}, fmt.Errorf("%w: %s", ErrOriginNotRecognized, norm)
}

// ByID returns an enabled tenant by identifier.
func (r *Registry) ByID(id string) (Tenant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	if !ok {
		return Tenant{}, fmt.Errorf("%w: %s", ErrTenantNotFound, id)
	}
	if !t.Enabled {
		return Tenant{}, fmt.Errorf("%w: %s", ErrTenantDisabled, id)
	}

	return t, nil
}

// All returns every loaded tenant, disabled ones included, in source order.
func (r *Registry) All() []Tenant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tenant, len(r.tenants))
	copy(out, r.tenants)

	return out
}

// Active returns the enabled tenants in source order.
func (r *Registry) Active() []Tenant {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tenant, 0, r.active)
	for _, t := range r.tenants {
		if t.Enabled {
			out = append(out, t)
		}
	}

	return out
}

// AllowedOrigins returns the sorted, deduplicated union of enabled tenants'
// origins, wildcard patterns included.
func (r *Registry) AllowedOrigins() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, t := range r.tenants {
		if !t.Enabled {
			continue
		}
		for _, o := range t.Origins {
			seen[o] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for o := range seen {
		out = append(out, o)
	}
	sort.Strings(out)

	return out
}

// Describe names the registry's source.
func (r *Registry) Describe() string {
	return r.source.Describe()
}

type registryIndex struct {
	byID      map[string]Tenant
	byOrigin  map[string]string
	wildcards []wildcardRoute
	active    int
}

func buildIndex(tenants []Tenant) (registryIndex, error) {
	idx := registryIndex{
		byID:     make(map[string]Tenant, len(tenants)),
		byOrigin: make(map[string]string),
	}

	for _, t := range tenants {
		if err := t.validate(); err != nil {
			return registryIndex{}, err
		}
		if _, dup := idx.byID[t.ID]; dup {
			return registryIndex{}, fmt.Errorf("%w: duplicate tenant id %q", ErrConfigMalformed, t.ID)
		}
		idx.byID[t.ID] = t

		if !t.Enabled {
			continue
		}
		idx.active++

		for _, origin := range t.Origins {
			if owner, taken := idx.byOrigin[origin]; taken {
				return registryIndex{}, fmt.Errorf("%w: %q claimed by %q and %q", ErrDuplicateOrigin, origin, owner, t.ID)
			}
			idx.byOrigin[origin] = t.ID

			if strings.Contains(origin, "*") {
				idx.wildcards = append(idx.wildcards, wildcardRoute{re: wildcardRegexp(origin), tenantID: t.ID})
			}
		}
	}

	return idx, nil
}

type fileSource struct {
	path string
}

// FileSource reads tenants from a YAML document with a top-level "tenants"
// map keyed by tenant identifier.
func FileSource(path string) Source {
	return fileSource{path: path}
}

func (s fileSource) Describe() string {
	return "file " + s.path
}

type tenantFile struct {
	Tenants map[string]tenantSpec `yaml:"tenants"`
}

type tenantSpec struct {
	Name           string            `yaml:"name"`
	AllowedOrigins []string          `yaml:"allowed_origins"`
	Odoo           odooSpec          `yaml:"odoo"`
	Webpay         webpaySpec        `yaml:"webpay"`
	Enabled        *bool             `yaml:"enabled"`
	Metadata       map[string]string `yaml:"metadata"`
}

type odooSpec struct {
	URL      string `yaml:"url"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type webpaySpec struct {
	ProviderID      int    `yaml:"provider_id"`
	PaymentMethodID int    `yaml:"payment_method_id"`
	IntegrationType string `yaml:"integration_type"`
	CommerceCode    string `yaml:"commerce_code"`
	APIKey          string `yaml:"api_key"`
}

func (s fileSource) Load() ([]Tenant, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, s.path)
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var doc tenantFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}
	if len(doc.Tenants) == 0 {
		return nil, fmt.Errorf("%w: %s has no tenants section", ErrConfigMalformed, s.path)
	}

	ids := make([]string, 0, len(doc.Tenants))
	for id := range doc.Tenants {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tenants := make([]Tenant, 0, len(ids))
	for _, id := range ids {
		tenants = append(tenants, doc.Tenants[id].toTenant(id))
	}

	return tenants, nil
}

func (s tenantSpec) toTenant(id string) Tenant {
	return Tenant{
		ID:      SanitizeID(id),
		Name:    s.Name,
		Origins: normalizeOrigins(s.AllowedOrigins),
		Odoo: OdooCredentials{
			URL:      strings.TrimRight(strings.TrimSpace(s.Odoo.URL), "/"),
			Database: s.Odoo.Database,
			Username: s.Odoo.Username,
			Password: s.Odoo.Password,
		},
		Webpay: WebpayCredentials{
			ProviderID:      s.Webpay.ProviderID,
			PaymentMethodID: s.Webpay.PaymentMethodID,
			IntegrationType: normalizeIntegrationType(s.Webpay.IntegrationType),
			CommerceCode:    s.Webpay.CommerceCode,
			APIKey:          s.Webpay.APIKey,
		},
		Enabled:  s.Enabled == nil || *s.Enabled,
		Metadata: s.Metadata,
	}
}

type envSource struct {
	raw string
}

// EnvSource parses the TENANT_CONFIGS environment document: a JSON array of
// flat tenant objects.
func EnvSource(raw string) Source {
	return envSource{raw: raw}
}

func (s envSource) Describe() string {
	return "env TENANT_CONFIGS"
}

type tenantEnvSpec struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	AllowedOrigins  []string `json:"allowed_origins"`
	OdooURL         string   `json:"odoo_url"`
	OdooDB          string   `json:"odoo_db"`
	OdooUsername    string   `json:"odoo_username"`
	OdooPassword    string   `json:"odoo_password"`
	ProviderID      int      `json:"provider_id"`
	PaymentMethodID int      `json:"payment_method_id"`
	IntegrationType string   `json:"integration_type"`
	CommerceCode    string   `json:"commerce_code"`
	APIKey          string   `json:"api_key"`
	Enabled         *bool    `json:"enabled"`
}

func (s envSource) Load() ([]Tenant, error) {
	if strings.TrimSpace(s.raw) == "" {
		return nil, fmt.Errorf("%w: TENANT_CONFIGS is empty", ErrConfigNotFound)
	}

	var specs []tenantEnvSpec
	if err := json.Unmarshal([]byte(s.raw), &specs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigMalformed, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: TENANT_CONFIGS has no tenants", ErrConfigMalformed)
	}

	tenants := make([]Tenant, 0, len(specs))
	for _, spec := range specs {
		tenants = append(tenants, Tenant{
			ID:      SanitizeID(spec.ID),
			Name:    spec.Name,
			Origins: normalizeOrigins(spec.AllowedOrigins),
			Odoo: OdooCredentials{
				URL:      strings.TrimRight(strings.TrimSpace(spec.OdooURL), "/"),
				Database: spec.OdooDB,
				Username: spec.OdooUsername,
				Password: spec.OdooPassword,
			},
			Webpay: WebpayCredentials{
				ProviderID:      spec.ProviderID,
				PaymentMethodID: spec.PaymentMethodID,
				IntegrationType: normalizeIntegrationType(spec.IntegrationType),
				CommerceCode:    spec.CommerceCode,
				APIKey:          spec.APIKey,
			},
			Enabled: spec.Enabled == nil || *spec.Enabled,
		})
	}

	return tenants, nil
}

// StaticSource wraps a fixed tenant set, mainly for tests.
func StaticSource(tenants ...Tenant) Source {
	return staticSource{tenants: tenants}
}

type staticSource struct {
	tenants []Tenant
}

func (s staticSource) Describe() string {
	return "static"
}

func (s staticSource) Load() ([]Tenant, error) {
	out := make([]Tenant, len(s.tenants))
	copy(out, s.tenants)

	return out, nil
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		if norm := NormalizeOrigin(o); norm != "" {
			out = append(out, norm)
		}
	}

	return out
}

func normalizeIntegrationType(raw string) IntegrationType {
	norm := strings.ToUpper(strings.TrimSpace(raw))
	if norm == "" {
		return IntegrationTest
	}

	return IntegrationType(norm)
}
