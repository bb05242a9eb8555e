// Package errors defines the domain error taxonomy shared across
// services. Every non-success path in the core surfaces one of these,
// so handlers can map failures to HTTP statuses without string
// matching.
package errors

import "fmt"

type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy of e carrying a request-specific message.
// The code and status are preserved so errors.Is still matches the
// base value.
func (e *DomainError) WithMessage(format string, args ...interface{}) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
		Status:  e.Status,
	}
}

// Is matches derived copies against their base value by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
