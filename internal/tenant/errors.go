package tenant

import "errors"

var (
	ErrOriginNotRecognized = errors.New("origin not recognized")
	ErrNoTenantsConfigured = errors.New("no tenants configured")
	ErrConfigNotFound      = errors.New("tenant config not found")
	ErrConfigMalformed     = errors.New("tenant config malformed")
	ErrDuplicateOrigin     = errors.New("origin claimed by multiple tenants")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrTenantDisabled      = errors.New("tenant disabled")
)
