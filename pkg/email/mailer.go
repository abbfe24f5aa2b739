package email

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
)

// EmailSender represents an interface for sending emails.
type EmailSender interface {
	SendEmail(ctx context.Context, params SendEmailParams) error
}

// SendEmailParams represents the parameters for sending an email.
type SendEmailParams struct {
	SendTo   string `json:"send_to"`            // Email address of the recipient
	ReplyTo  string `json:"reply_to,omitempty"` // Optional
	Subject  string `json:"subject"`
	BodyHTML string `json:"body_html"`
	Tag      string `json:"tag,omitempty"` // Optional, used by Postmark and dev file names
}

// Validate checks required fields and rejects values that could break out
// of a message header.
func (p SendEmailParams) Validate() error {
	if strings.TrimSpace(p.SendTo) == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidParams)
	}
	if _, err := mail.ParseAddress(p.SendTo); err != nil {
		return fmt.Errorf("%w: invalid recipient: %v", ErrInvalidParams, err)
	}
	if p.ReplyTo != "" {
		if _, err := mail.ParseAddress(p.ReplyTo); err != nil {
			return fmt.Errorf("%w: invalid reply-to: %v", ErrInvalidParams, err)
		}
	}
	if strings.TrimSpace(p.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidParams)
	}
	if p.BodyHTML == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidParams)
	}
	for _, v := range []string{p.SendTo, p.ReplyTo, p.Subject, p.Tag} {
		if strings.ContainsAny(v, "\r\n") {
			return fmt.Errorf("%w: header values must not contain line breaks", ErrInvalidParams)
		}
	}
	return nil
}
