package utils

import "fmt"

// ValidationError marks invalid user-supplied input. The CLI reports its
// message on stderr and exits with code 2.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
