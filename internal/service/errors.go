package service

import (
	"errors"
	"fmt"
)

// ErrPermissionDenied is returned when the acting user is not allowed to
// perform the operation (e.g. deleting someone else's expense without the
// ADMIN role).
var ErrPermissionDenied = errors.New("permission denied")

// ValidationError is a rejected input with a human-readable reason. These are
// produced by the service layer before a transaction is constructed, so
// malformed data never reaches the balance engine.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalidf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
