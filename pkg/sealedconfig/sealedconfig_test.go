package sealedconfig_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotx/contactrelay/pkg/email"
	"github.com/iotx/contactrelay/pkg/sealedconfig"
)

func TestSealOpen(t *testing.T) {
	t.Parallel()

	sealed, err := sealedconfig.Seal("correct horse", []byte("payload"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, sealedconfig.Prefix))

	again, err := sealedconfig.Seal("correct horse", []byte("payload"))
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "salt and nonce are random")

	plain, err := sealedconfig.Open("correct horse", sealed)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(plain))

	_, err = sealedconfig.Open("wrong", sealed)
	assert.ErrorIs(t, err, sealedconfig.ErrDecryptionFailed)
}

func TestOpen_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sealed string
	}{
		{"no prefix", "abc"},
		{"bad base64", sealedconfig.Prefix + "!!!"},
		{"too short", sealedconfig.Prefix + "AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := sealedconfig.Open("pass", tt.sealed)
			assert.ErrorIs(t, err, sealedconfig.ErrInvalidCiphertext)
		})
	}

	_, err := sealedconfig.Open("", "v1:AAAA")
	assert.ErrorIs(t, err, sealedconfig.ErrPassphraseRequired)
	_, err = sealedconfig.Seal("", []byte("x"))
	assert.ErrorIs(t, err, sealedconfig.ErrPassphraseRequired)
}

func TestMailFile(t *testing.T) {
	t.Parallel()

	smtpCfg := email.SMTPConfig{Host: "smtp.hostinger.com", Port: 465, Username: "relay@iot-x.io", Password: "s3cret"}
	mc := sealedconfig.FromSMTP(smtpCfg)
	assert.True(t, mc.Secure)

	path := filepath.Join(t.TempDir(), "mail.sealed")
	require.NoError(t, sealedconfig.WriteFile(path, "passphrase", mc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "s3cret")
	assert.Contains(t, string(raw), "# Do not modify this file manually")

	got, err := sealedconfig.ReadFile(path, "passphrase")
	require.NoError(t, err)
	assert.Equal(t, mc, got)

	applied := got.Apply(email.SMTPConfig{Timeout: 5})
	assert.Equal(t, "smtp.hostinger.com", applied.Host)
	assert.Equal(t, 465, applied.Port)
	assert.Equal(t, "relay@iot-x.io", applied.Username)
	assert.Equal(t, "s3cret", applied.Password)
	assert.Equal(t, email.TLSModeImplicit, applied.TLSMode)
	assert.EqualValues(t, 5, applied.Timeout)

	_, err = sealedconfig.ReadFile(path, "other")
	assert.ErrorIs(t, err, sealedconfig.ErrDecryptionFailed)
}

func TestMailConfig_ApplyNotSecure(t *testing.T) {
	t.Parallel()

	mc := sealedconfig.MailConfig{Host: "smtp.example.com", Port: 587}
	applied := mc.Apply(email.SMTPConfig{TLSMode: email.TLSModeImplicit})
	assert.Equal(t, email.TLSModeAuto, applied.TLSMode)
	assert.Equal(t, email.TLSModeStartTLS, applied.Mode())
}

func TestSealMail_Invalid(t *testing.T) {
	t.Parallel()

	_, err := sealedconfig.SealMail("pass", sealedconfig.MailConfig{})
	assert.ErrorIs(t, err, sealedconfig.ErrInvalidPayload)
}

func TestReadFile_Empty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, []byte("# only comments\n"), 0o600))

	_, err := sealedconfig.ReadFile(path, "pass")
	assert.ErrorIs(t, err, sealedconfig.ErrInvalidCiphertext)
}
