package ledger

import "errors"

var (
	ErrNoRemote     = errors.New("remote storage is not configured")
	ErrInvalidScope = errors.New("tenant is not set")
)
