package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
)

// SMTPSender delivers messages through an authenticated SMTP relay account.
// The account address is used as the sender of every message.
type SMTPSender struct {
	cfg       SMTPConfig
	verifyTLS bool
	now       func() time.Time
}

// SMTPOption configures an SMTPSender.
type SMTPOption func(*SMTPSender)

// WithVerifyTLS toggles certificate verification of the SMTP server.
func WithVerifyTLS(verify bool) SMTPOption {
	return func(s *SMTPSender) { s.verifyTLS = verify }
}

// WithClock replaces time.Now for the Date header.
func WithClock(now func() time.Time) SMTPOption {
	return func(s *SMTPSender) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSMTPSender validates cfg and returns a sender.
func NewSMTPSender(cfg SMTPConfig, opts ...SMTPOption) (*SMTPSender, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	s := &SMTPSender{cfg: cfg, verifyTLS: true, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// From returns the envelope and header sender.
func (s *SMTPSender) From() string { return s.cfg.Username }

// SendEmail implements EmailSender.
func (s *SMTPSender) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	from := s.cfg.Username
	msg, err := buildMessage(from, params, s.now(), uuid.NewString()+"@"+s.cfg.Host)
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}

	return s.session(ctx, func(c *smtp.Client) error {
		if err := c.SendMail(from, []string{params.SendTo}, bytes.NewReader(msg)); err != nil {
			return errors.Join(ErrFailedToSendEmail, err)
		}
		return nil
	})
}

// Verify connects, negotiates TLS, authenticates and issues NOOP without
// sending anything.
func (s *SMTPSender) Verify(ctx context.Context) error {
	return s.session(ctx, func(c *smtp.Client) error {
		return c.Noop()
	})
}

func (s *SMTPSender) session(ctx context.Context, fn func(*smtp.Client) error) error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	dialer := &net.Dialer{Timeout: s.cfg.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return errors.Join(ErrConnect, err)
	}

	deadline := time.Now().Add(s.cfg.Timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c, err := s.handshake(ctx, conn)
	if err != nil {
		_ = conn.Close()
		return withContext(ctx, err)
	}
	defer c.Close()

	if err := fn(c); err != nil {
		return withContext(ctx, err)
	}
	_ = c.Quit()
	return nil
}

func (s *SMTPSender) handshake(ctx context.Context, conn net.Conn) (*smtp.Client, error) {
	tlsConfig := &tls.Config{
		ServerName:         s.cfg.Host,
		InsecureSkipVerify: !s.verifyTLS, //nolint:gosec // only outside production
		MinVersion:         tls.VersionTLS12,
	}

	var c *smtp.Client
	switch s.cfg.Mode() {
	case TLSModeImplicit:
		tlsConn := tls.Client(conn, tlsConfig)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			return nil, errors.Join(ErrTLS, err)
		}
		c = smtp.NewClient(tlsConn)
	case TLSModeStartTLS:
		var err error
		if c, err = smtp.NewClientStartTLS(conn, tlsConfig); err != nil {
			return nil, errors.Join(ErrTLS, err)
		}
	default:
		c = smtp.NewClient(conn)
	}

	if s.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)); err != nil {
			_ = c.Close()
			return nil, errors.Join(ErrAuth, err)
		}
	}
	return c, nil
}

func withContext(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return errors.Join(err, ctxErr)
	}
	return err
}

func buildMessage(from string, p SendEmailParams, now time.Time, messageID string) ([]byte, error) {
	var buf bytes.Buffer

	header := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	header("From", from)
	header("To", p.SendTo)
	if p.ReplyTo != "" {
		header("Reply-To", p.ReplyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", p.Subject))
	header("Date", now.Format(time.RFC1123Z))
	header("Message-ID", "<"+messageID+">")
	header("MIME-Version", "1.0")
	header("Content-Type", `text/html; charset="utf-8"`)
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(p.BodyHTML)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
