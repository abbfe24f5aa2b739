package contact

import "time"

// Config holds the HTTP-facing settings of the relay.
type Config struct {
	FrontendURL      string        `env:"FRONTEND_URL" envDefault:"https://iot-x.io"`
	BodyLimit        int64         `env:"CONTACT_BODY_LIMIT" envDefault:"512000"`
	GlobalRateLimit  int           `env:"GLOBAL_RATE_LIMIT" envDefault:"120"`
	GlobalRateWindow time.Duration `env:"GLOBAL_RATE_WINDOW" envDefault:"1m"`
}
