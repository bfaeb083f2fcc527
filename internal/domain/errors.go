package domain

import "errors"

// Sentinel errors shared across the store and API layers. Ownership misses
// surface as ErrNotFound, never as a permission error, so callers cannot
// probe for other users' rows.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError carries a user-facing message for malformed input.
// Messages are in Spanish, the application's display language.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
