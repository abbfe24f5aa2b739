package main

import (
	"errors"
	"fmt"

	"github.com/iotx/contactrelay/modules/contact"
	"github.com/iotx/contactrelay/pkg/config"
	"github.com/iotx/contactrelay/pkg/email"
	"github.com/iotx/contactrelay/pkg/environment"
	"github.com/iotx/contactrelay/pkg/httpserver"
	"github.com/iotx/contactrelay/pkg/logger"
	"github.com/iotx/contactrelay/pkg/redis"
	"github.com/iotx/contactrelay/pkg/sealedconfig"
	contactsvc "github.com/iotx/contactrelay/svc/contact"
)

const serviceName = "contactrelay"

var errEncryptionKeyMissing = errors.New("ENCRYPTION_KEY is not set")

type appConfig struct {
	NodeEnv environment.Environment `env:"NODE_ENV" envDefault:"development"`
	AppEnv  string                  `env:"APP_ENV"`

	SealedMailPath string `env:"EMAIL_SEALED_CONFIG"`
	EncryptionKey  string `env:"ENCRYPTION_KEY"`

	Log     logger.Config
	Mail    email.Config
	Redis   redis.Config
	HTTP    httpserver.Config
	Contact contactsvc.Config
	Web     contact.Config
}

func loadConfig() (appConfig, error) {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return appConfig{}, err
	}
	return cfg, nil
}

// environment resolves NODE_ENV with APP_ENV taking precedence when set.
func (c appConfig) environment() environment.Environment {
	if c.AppEnv != "" {
		return environment.Parse(c.AppEnv)
	}
	return environment.Parse(string(c.NodeEnv))
}

// mail returns the transport config with the sealed SMTP settings applied
// when EMAIL_SEALED_CONFIG is set.
func (c appConfig) mail() (email.Config, error) {
	mc := c.Mail
	if c.SealedMailPath == "" {
		return mc, nil
	}
	if c.EncryptionKey == "" {
		return email.Config{}, fmt.Errorf("open %s: %w", c.SealedMailPath, errEncryptionKeyMissing)
	}
	sealed, err := sealedconfig.ReadFile(c.SealedMailPath, c.EncryptionKey)
	if err != nil {
		return email.Config{}, fmt.Errorf("open %s: %w", c.SealedMailPath, err)
	}
	mc.SMTP = sealed.Apply(mc.SMTP)
	return mc, nil
}
