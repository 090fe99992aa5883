package odoo

import "errors"

var (
	ErrAuthFailed    = errors.New("odoo authentication failed")
	ErrRPC           = errors.New("odoo rpc error")
	ErrOrderNotFound = errors.New("sale order not found")
)
