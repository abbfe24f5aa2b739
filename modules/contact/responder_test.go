package contact_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iotx/contactrelay/modules/contact"
	"github.com/iotx/contactrelay/pkg/environment"
	contactsvc "github.com/iotx/contactrelay/svc/contact"
)

func TestResponder_Reply(t *testing.T) {
	t.Parallel()

	dispatch := &contactsvc.DispatchError{Code: "EAUTH", Err: errors.New("535 auth failed")}

	tests := []struct {
		name   string
		env    environment.Environment
		err    error
		status int
		want   contact.Reply
	}{
		{"ok", environment.Production, nil, http.StatusOK, contact.Reply{Success: true, Message: contact.MsgSent}},
		{"rate limited", environment.Production, contactsvc.ErrRateLimitExceeded, http.StatusTooManyRequests, contact.Reply{Message: contact.MsgTooManyRequest}},
		{"validation", environment.Production, &contactsvc.ValidationError{Field: "name", Message: "Name is required"}, http.StatusBadRequest, contact.Reply{Message: "Name is required"}},
		{"dispatch prod", environment.Production, dispatch, http.StatusInternalServerError, contact.Reply{Message: contact.MsgSendFailed}},
		{"dispatch staging", environment.Staging, dispatch, http.StatusInternalServerError, contact.Reply{Message: "Failed to send your message: 535 auth failed", ErrorCode: "EAUTH"}},
		{"unexpected", environment.Development, errors.New("store down"), http.StatusInternalServerError, contact.Reply{Message: contact.MsgUnexpected}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status, got := contact.NewResponder(tt.env).Reply(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.want, got)
		})
	}
}
