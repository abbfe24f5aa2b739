package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email: failed to send email")
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrInvalidParams     = errors.New("email: invalid params")
	ErrConnect           = errors.New("email: cannot connect to smtp server")
	ErrTLS               = errors.New("email: tls negotiation failed")
	ErrAuth              = errors.New("email: smtp authentication failed")
)
