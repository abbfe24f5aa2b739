package email_test

import (
	"context"
	"mime"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotx/contactrelay/pkg/email"
	"github.com/iotx/contactrelay/pkg/email/emailtest"
)

func plainConfig(srv *emailtest.Server, user, pass string) email.SMTPConfig {
	return email.SMTPConfig{
		Host:     srv.Host,
		Port:     srv.Port,
		Username: user,
		Password: pass,
		TLSMode:  email.TLSModePlain,
		Timeout:  5 * time.Second,
	}
}

func TestSMTPSender_SendEmail(t *testing.T) {
	t.Parallel()

	srv := emailtest.NewServer(t, emailtest.WithCredentials("relay@iot-x.io", "secret"))
	sender, err := email.NewSMTPSender(plainConfig(srv, "relay@iot-x.io", "secret"),
		email.WithClock(func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	assert.Equal(t, "relay@iot-x.io", sender.From())

	err = sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "contact@iot-x.io",
		ReplyTo:  "jane@example.com",
		Subject:  "Hello Zoë",
		BodyHTML: "<p>" + strings.Repeat("long line ", 20) + "</p>",
	})
	require.NoError(t, err)

	msgs := srv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "relay@iot-x.io", msgs[0].From)
	assert.Equal(t, []string{"contact@iot-x.io"}, msgs[0].To)

	header, body, err := msgs[0].Parse()
	require.NoError(t, err)
	assert.Equal(t, "relay@iot-x.io", header.Get("From"))
	assert.Equal(t, "contact@iot-x.io", header.Get("To"))
	assert.Equal(t, "jane@example.com", header.Get("Reply-To"))
	assert.Contains(t, header.Get("Content-Type"), "text/html")
	assert.NotEmpty(t, header.Get("Message-ID"))

	subject, err := new(mime.WordDecoder).DecodeHeader(header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Hello Zoë", subject)

	date, err := header.Date()
	require.NoError(t, err)
	assert.True(t, date.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)))

	assert.Equal(t, "<p>"+strings.Repeat("long line ", 20)+"</p>", body)
}

func TestSMTPSender_Errors(t *testing.T) {
	t.Parallel()

	params := email.SendEmailParams{SendTo: "contact@iot-x.io", Subject: "s", BodyHTML: "<p>b</p>"}

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()

		srv := emailtest.NewServer(t, emailtest.WithCredentials("relay@iot-x.io", "secret"))
		sender, err := email.NewSMTPSender(plainConfig(srv, "relay@iot-x.io", "wrong"))
		require.NoError(t, err)

		err = sender.SendEmail(context.Background(), params)
		require.Error(t, err)
		assert.ErrorIs(t, err, email.ErrAuth)
		assert.Equal(t, email.FailureAuth, email.Classify(err))
		assert.Empty(t, srv.Messages())
	})

	t.Run("rejected data", func(t *testing.T) {
		t.Parallel()

		srv := emailtest.NewServer(t, emailtest.WithRejectData(554, "Message rejected"))
		sender, err := email.NewSMTPSender(plainConfig(srv, "", ""))
		require.NoError(t, err)

		err = sender.SendEmail(context.Background(), params)
		require.Error(t, err)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Equal(t, email.FailureServerReply, email.Classify(err))
		assert.Equal(t, "ESERVER", email.ErrorCode(err))
	})

	t.Run("temporary rejection", func(t *testing.T) {
		t.Parallel()

		srv := emailtest.NewServer(t, emailtest.WithRejectData(451, "Try later"))
		sender, err := email.NewSMTPSender(plainConfig(srv, "", ""))
		require.NoError(t, err)

		err = sender.SendEmail(context.Background(), params)
		assert.Equal(t, email.FailureClientReply, email.Classify(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		l, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := l.Addr().(*net.TCPAddr).Port
		require.NoError(t, l.Close())

		sender, err := email.NewSMTPSender(email.SMTPConfig{Host: "127.0.0.1", Port: port, TLSMode: email.TLSModePlain, Timeout: time.Second})
		require.NoError(t, err)

		err = sender.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrConnect)
		assert.Equal(t, email.FailureConnection, email.Classify(err))
		assert.Equal(t, "ECONNECTION", email.ErrorCode(err))
	})

	t.Run("starttls not offered", func(t *testing.T) {
		t.Parallel()

		srv := emailtest.NewServer(t)
		cfg := plainConfig(srv, "", "")
		cfg.TLSMode = email.TLSModeStartTLS
		sender, err := email.NewSMTPSender(cfg)
		require.NoError(t, err)

		err = sender.SendEmail(context.Background(), params)
		assert.ErrorIs(t, err, email.ErrTLS)
		assert.Equal(t, "ETLS", email.ErrorCode(err))
	})

	t.Run("invalid params", func(t *testing.T) {
		t.Parallel()

		srv := emailtest.NewServer(t)
		sender, err := email.NewSMTPSender(plainConfig(srv, "", ""))
		require.NoError(t, err)

		err = sender.SendEmail(context.Background(), email.SendEmailParams{})
		assert.ErrorIs(t, err, email.ErrInvalidParams)
	})
}

func TestSMTPSender_Verify(t *testing.T) {
	t.Parallel()

	srv := emailtest.NewServer(t, emailtest.WithCredentials("relay@iot-x.io", "secret"))

	ok, err := email.NewSMTPSender(plainConfig(srv, "relay@iot-x.io", "secret"))
	require.NoError(t, err)
	assert.NoError(t, ok.Verify(context.Background()))

	bad, err := email.NewSMTPSender(plainConfig(srv, "relay@iot-x.io", "nope"))
	require.NoError(t, err)
	assert.ErrorIs(t, bad.Verify(context.Background()), email.ErrAuth)

	assert.Empty(t, srv.Messages())
}

func TestNewSMTPSender_Config(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  email.SMTPConfig
	}{
		{"missing host", email.SMTPConfig{Port: 465}},
		{"bad port", email.SMTPConfig{Host: "smtp.example.com", Port: 70000}},
		{"bad mode", email.SMTPConfig{Host: "smtp.example.com", Port: 465, TLSMode: "ssl3"}},
		{"user without password", email.SMTPConfig{Host: "smtp.example.com", Port: 465, Username: "u@example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := email.NewSMTPSender(tt.cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}
}

func TestSMTPConfig_Mode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, email.TLSModeImplicit, email.SMTPConfig{Port: 465}.Mode())
	assert.True(t, email.SMTPConfig{Port: 465, TLSMode: email.TLSModeAuto}.Secure())
	assert.Equal(t, email.TLSModeStartTLS, email.SMTPConfig{Port: 587}.Mode())
	assert.False(t, email.SMTPConfig{Port: 587}.Secure())
	assert.Equal(t, email.TLSModePlain, email.SMTPConfig{Port: 465, TLSMode: email.TLSModePlain}.Mode())
}
