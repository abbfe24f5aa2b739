package contact

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("contact: invalid request")
	ErrRateLimitExceeded = errors.New("contact: too many requests")
	ErrDispatch          = errors.New("contact: failed to send message")
	ErrInvalidConfig     = errors.New("contact: invalid service configuration")
)

// DispatchError wraps a transport failure together with its short code.
type DispatchError struct {
	Code string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Err, e.Code)
}

func (e *DispatchError) Unwrap() []error { return []error{ErrDispatch, e.Err} }
