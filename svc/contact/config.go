package contact

import "time"

// Config holds relay settings read from the environment.
type Config struct {
	Recipient  string        `env:"CONTACT_EMAIL" envDefault:"contact@iot-x.io"`
	RateLimit  int           `env:"CONTACT_RATE_LIMIT" envDefault:"5"`
	RateWindow time.Duration `env:"CONTACT_RATE_WINDOW" envDefault:"1h"`
}
