package sealedconfig

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iotx/contactrelay/pkg/email"
)

// MailConfig is the sealed payload: the relay account and how to reach it.
type MailConfig struct {
	Host   string   `json:"host"`
	Port   int      `json:"port"`
	Secure bool     `json:"secure"`
	Auth   MailAuth `json:"auth"`
}

// MailAuth holds relay account credentials.
type MailAuth struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// FromSMTP captures the sealable part of an SMTP config.
func FromSMTP(c email.SMTPConfig) MailConfig {
	return MailConfig{
		Host:   c.Host,
		Port:   c.Port,
		Secure: c.Secure(),
		Auth:   MailAuth{User: c.Username, Pass: c.Password},
	}
}

// Apply overrides connection and credential fields of c.
func (m MailConfig) Apply(c email.SMTPConfig) email.SMTPConfig {
	c.Host = m.Host
	c.Port = m.Port
	c.Username = m.Auth.User
	c.Password = m.Auth.Pass
	if m.Secure {
		c.TLSMode = email.TLSModeImplicit
	} else if c.TLSMode == email.TLSModeImplicit {
		c.TLSMode = email.TLSModeAuto
	}
	return c
}

// SealMail encrypts m with passphrase.
func SealMail(passphrase string, m MailConfig) (string, error) {
	if m.Host == "" || m.Port <= 0 {
		return "", fmt.Errorf("%w: host and port are required", ErrInvalidPayload)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", errors.Join(ErrInvalidPayload, err)
	}
	return Seal(passphrase, data)
}

// OpenMail decrypts a value produced by SealMail.
func OpenMail(passphrase, sealed string) (MailConfig, error) {
	data, err := Open(passphrase, sealed)
	if err != nil {
		return MailConfig{}, err
	}
	var m MailConfig
	if err := json.Unmarshal(data, &m); err != nil {
		return MailConfig{}, errors.Join(ErrInvalidPayload, err)
	}
	return m, nil
}

const fileHeader = `# This file contains encrypted email configuration
# Do not modify this file manually
`

// WriteFile seals m into path. The file is safe to commit as long as the
// passphrase is not.
func WriteFile(path, passphrase string, m MailConfig) error {
	sealed, err := SealMail(passphrase, m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(fileHeader+sealed+"\n"), 0o600)
}

// ReadFile opens a file written by WriteFile. Lines starting with # are ignored.
func ReadFile(path, passphrase string) (MailConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return MailConfig{}, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return OpenMail(passphrase, line)
	}
	if err := sc.Err(); err != nil {
		return MailConfig{}, err
	}
	return MailConfig{}, ErrInvalidCiphertext
}
