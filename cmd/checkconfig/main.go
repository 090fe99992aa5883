// Command checkconfig loads the tenant registry the same way the service
// does and reports what it found. Run it after editing tenants.yaml or
// TENANT_CONFIGS; a non-zero exit means the service would refuse to start.
package main

import (
	"fmt"
	"log"
	"os"

	"paymux/config"
	"paymux/internal/tenant"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Config error: %s", err)
	}

	src := tenantSource(cfg)
	fmt.Printf("Loading tenants from %s\n\n", src.Describe())

	registry, err := tenant.Load(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config check failed: %v\n", err)
		os.Exit(1)
	}

	active := registry.Active()
	fmt.Printf("Configuration OK: %d active tenant(s)\n\n", len(active))

	if len(active) == 0 {
		fmt.Fprintln(os.Stderr, "no active tenants; enable at least one")
		os.Exit(1)
	}

	for i, t := range active {
		fmt.Printf("Tenant #%d: %s (%s)\n", i+1, t.Name, t.ID)
		for _, o := range t.Origins {
			fmt.Printf("  origin   %s\n", o)
		}
		fmt.Printf("  odoo     %s db=%s user=%s\n", t.Odoo.URL, t.Odoo.Database, t.Odoo.Username)
		fmt.Printf("  webpay   provider=%d payment_method=%d integration=%s\n",
			t.Webpay.ProviderID, t.Webpay.PaymentMethodID, t.Webpay.IntegrationType)
		fmt.Println()
	}

	fmt.Println("Resolving each tenant's first origin:")
	failed := false
	for _, t := range active {
		if len(t.Origins) == 0 {
			continue
		}

		origin := t.Origins[0]
		got, err := registry.Resolve(origin)
		switch {
		case err != nil:
			fmt.Printf("  FAIL %s: %v\n", origin, err)
			failed = true
		case got.ID != t.ID:
			fmt.Printf("  FAIL %s: resolved to %q, want %q\n", origin, got.ID, t.ID)
			failed = true
		default:
			fmt.Printf("  ok   %s -> %s\n", origin, got.ID)
		}
	}

	if failed {
		os.Exit(1)
	}
}

func tenantSource(cfg config.Config) tenant.Source {
	if cfg.TenantsFile != "" {
		return tenant.FileSource(cfg.TenantsFile)
	}
	return tenant.EnvSource(cfg.TenantConfigs)
}
