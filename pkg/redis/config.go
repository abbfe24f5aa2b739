package redis

import "time"

// Config describes the optional Redis instance backing shared rate limits.
// An empty URL means Redis is not used.
type Config struct {
	URL            string        `env:"RATE_LIMIT_REDIS_URL"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool { return c.URL != "" }
