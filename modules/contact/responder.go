package contact

import (
	"errors"
	"net/http"

	"github.com/iotx/contactrelay/pkg/environment"
	contactsvc "github.com/iotx/contactrelay/svc/contact"
)

// Client-facing messages.
const (
	MsgSent           = "Your message has been sent successfully!"
	MsgTooManyRequest = "Too many requests. Please try again later."
	MsgSendFailed     = "Failed to send your message. Please try again later."
	MsgUnexpected     = "Failed to process your message. Please try again later."
	MsgInvalidBody    = "Invalid request body"
	MsgBodyTooLarge   = "Request body is too large"
	MsgContentType    = "Content-Type must be application/json"
)

// Reply is the JSON body of every /api/contact response.
type Reply struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// Responder turns a submission outcome into a status code and Reply. It is
// the only place where the environment decides how much detail is exposed.
type Responder struct {
	env environment.Environment
}

// NewResponder returns a Responder for env.
func NewResponder(env environment.Environment) Responder {
	return Responder{env: env}
}

// Reply maps the error returned by contactsvc.Service.Submit.
func (r Responder) Reply(err error) (int, Reply) {
	if err == nil {
		return http.StatusOK, Reply{Success: true, Message: MsgSent}
	}

	var verr *contactsvc.ValidationError
	var derr *contactsvc.DispatchError
	switch {
	case errors.Is(err, contactsvc.ErrRateLimitExceeded):
		return http.StatusTooManyRequests, Reply{Message: MsgTooManyRequest}
	case errors.As(err, &verr):
		return http.StatusBadRequest, Reply{Message: verr.Message}
	case errors.Is(err, contactsvc.ErrValidation):
		return http.StatusBadRequest, Reply{Message: MsgInvalidBody}
	case errors.As(err, &derr):
		if !r.env.ExposeErrorDetails() {
			return http.StatusInternalServerError, Reply{Message: MsgSendFailed}
		}
		return http.StatusInternalServerError, Reply{
			Message:   "Failed to send your message: " + derr.Err.Error(),
			ErrorCode: derr.Code,
		}
	default:
		return http.StatusInternalServerError, Reply{Message: MsgUnexpected}
	}
}
