// internal/websocket/errors.go
package websocket

import "errors"

var (
	ErrMissingToken = errors.New("missing authentication token")
	ErrNotVerified  = errors.New("account must be verified")
)
