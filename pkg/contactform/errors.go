package contactform

import "errors"

var (
	ErrSubmitInFlight = errors.New("contactform: a submission is already in progress")
	ErrAwaitingReset  = errors.New("contactform: form was submitted and is waiting to reset")
	ErrUnknownField   = errors.New("contactform: unknown field")
	ErrInvalidBaseURL = errors.New("contactform: invalid relay base URL")
	ErrTransport      = errors.New("contactform: relay request failed")
)
