package models

import "errors"

// Error kinds surfaced by the core. Wrap them with fmt.Errorf("%w: ...")
// and test with errors.Is.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAuthentication   = errors.New("authentication failed")
	ErrPermissionDenied = errors.New("permission denied")
)
