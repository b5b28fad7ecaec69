package fields

import "errors"

var (
	ErrStoreRequired  = errors.New("fields: asset store required")
	ErrKindRequired   = errors.New("fields: asset kind required")
	ErrInvalidOptions = errors.New("fields: invalid field options")
	ErrHookFailed     = errors.New("fields: asset kind hook failed")
	ErrUnsupported    = errors.New("fields: unsupported asset type")
)
