package email

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"

	"github.com/emersion/go-smtp"
)

// FailureKind groups delivery errors by what an operator would check first.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureConnection
	FailureTimeout
	FailureTLS
	FailureAuth
	FailureClientReply
	FailureServerReply
)

// Code returns a short stable identifier, exposed to clients outside production.
func (k FailureKind) Code() string {
	switch k {
	case FailureConnection:
		return "ECONNECTION"
	case FailureTimeout:
		return "ETIMEDOUT"
	case FailureTLS:
		return "ETLS"
	case FailureAuth:
		return "EAUTH"
	case FailureClientReply:
		return "EENVELOPE"
	case FailureServerReply:
		return "ESERVER"
	default:
		return "EUNKNOWN"
	}
}

// Tips returns troubleshooting hints for the failure kind.
func (k FailureKind) Tips() []string {
	switch k {
	case FailureConnection, FailureTimeout:
		return []string{
			"Check if the email host is correct",
			"Verify that there are no firewalls blocking the connection",
			"Ensure port 465 (or the port you're using) is open",
		}
	case FailureAuth:
		return []string{
			"Check if your email and password are correct",
			"Ensure that the mail account has SMTP access enabled",
			"Check if you need to use an app-specific password",
		}
	case FailureTLS:
		return []string{
			"Check SSL/TLS settings",
			"Try changing port from 465 to 587 with EMAIL_TLS_MODE=starttls",
		}
	case FailureServerReply:
		return []string{
			"Server error: the mail server encountered an error",
			"Check with your mail provider about any sending restrictions",
		}
	case FailureClientReply:
		return []string{
			"Client error: the server rejected the request",
			"Check the from/to email addresses",
			"Ensure your account is allowed to send emails",
		}
	default:
		return []string{"Double-check your SMTP settings"}
	}
}

// Classify maps a delivery error to a FailureKind.
func Classify(err error) FailureKind {
	if err == nil {
		return FailureUnknown
	}

	switch {
	case errors.Is(err, ErrAuth):
		return FailureAuth
	case errors.Is(err, ErrTLS):
		return FailureTLS
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return FailureTimeout
	}

	var smtpErr *smtp.SMTPError
	if errors.As(err, &smtpErr) {
		switch {
		case smtpErr.Code == 530 || smtpErr.Code == 534 || smtpErr.Code == 535:
			return FailureAuth
		case smtpErr.Code >= 500:
			return FailureServerReply
		case smtpErr.Code >= 400:
			return FailureClientReply
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FailureTimeout
	}
	if errors.Is(err, ErrConnect) || errors.Is(err, syscall.ECONNREFUSED) {
		return FailureConnection
	}
	return FailureUnknown
}

// ErrorCode is shorthand for Classify(err).Code().
func ErrorCode(err error) string {
	return Classify(err).Code()
}
