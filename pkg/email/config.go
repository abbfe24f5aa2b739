package email

import (
	"fmt"
	"time"

	"github.com/iotx/contactrelay/pkg/environment"
)

// Transport names accepted in MAIL_TRANSPORT.
const (
	TransportSMTP     = "smtp"
	TransportPostmark = "postmark"
	TransportDev      = "dev"
)

// TLSMode selects how the SMTP connection is secured.
type TLSMode string

const (
	// TLSModeAuto picks TLSModeImplicit for port 465 and TLSModeStartTLS otherwise.
	TLSModeAuto     TLSMode = "auto"
	TLSModeImplicit TLSMode = "tls"
	TLSModeStartTLS TLSMode = "starttls"
	TLSModePlain    TLSMode = "plain"
)

// Config selects and configures the outbound transport.
type Config struct {
	Transport string `env:"MAIL_TRANSPORT" envDefault:"smtp"`
	DevDir    string `env:"MAIL_DEV_DIR" envDefault:"./tmp/mail"`
	SMTP      SMTPConfig
	Postmark  PostmarkConfig
}

// SMTPConfig holds relay account settings.
type SMTPConfig struct {
	Host     string        `env:"EMAIL_HOST"`
	Port     int           `env:"EMAIL_PORT" envDefault:"465"`
	Username string        `env:"EMAIL_USER"`
	Password string        `env:"EMAIL_PASS"`
	TLSMode  TLSMode       `env:"EMAIL_TLS_MODE" envDefault:"auto"`
	Timeout  time.Duration `env:"EMAIL_TIMEOUT" envDefault:"30s"`
}

// Mode resolves TLSModeAuto against the port.
func (c SMTPConfig) Mode() TLSMode {
	switch c.TLSMode {
	case TLSModeImplicit, TLSModeStartTLS, TLSModePlain:
		return c.TLSMode
	}
	if c.Port == 465 {
		return TLSModeImplicit
	}
	return TLSModeStartTLS
}

// Secure reports whether the connection uses implicit TLS.
func (c SMTPConfig) Secure() bool { return c.Mode() == TLSModeImplicit }

func (c SMTPConfig) validate() error {
	if c.Host == "" {
		return fmt.Errorf("%w: EMAIL_HOST is required", ErrInvalidConfig)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: EMAIL_PORT %d is out of range", ErrInvalidConfig, c.Port)
	}
	switch c.TLSMode {
	case "", TLSModeAuto, TLSModeImplicit, TLSModeStartTLS, TLSModePlain:
	default:
		return fmt.Errorf("%w: unknown EMAIL_TLS_MODE %q", ErrInvalidConfig, c.TLSMode)
	}
	if c.Username != "" && c.Password == "" {
		return fmt.Errorf("%w: EMAIL_PASS is required when EMAIL_USER is set", ErrInvalidConfig)
	}
	return nil
}

// PostmarkConfig holds Postmark API credentials.
type PostmarkConfig struct {
	ServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	AccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail  string `env:"POSTMARK_SENDER_EMAIL"`
}

// NewSender builds the sender selected by cfg.Transport. TLS certificate
// checks follow env.
func NewSender(cfg Config, env environment.Environment) (EmailSender, error) {
	switch cfg.Transport {
	case TransportSMTP, "":
		return NewSMTPSender(cfg.SMTP, WithVerifyTLS(env.VerifyTLS()))
	case TransportPostmark:
		return NewPostmarkSender(cfg.Postmark)
	case TransportDev:
		return NewDevSender(cfg.DevDir), nil
	default:
		return nil, fmt.Errorf("%w: unknown MAIL_TRANSPORT %q", ErrInvalidConfig, cfg.Transport)
	}
}
