package httpserver

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Option configures the HTTP server.
type Option func(*config)

// StartHook runs once the listener is bound. addr is the resolved address,
// which matters when the configured port is 0.
type StartHook func(ctx context.Context, addr net.Addr)

// StopHook runs after the server has drained.
type StopHook func(ctx context.Context)

// WithAddr sets the address the server listens on.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("WithAddr: addr cannot be empty")
	}
	return func(c *config) { c.addr = addr }
}

// WithListener serves on an already bound listener and ignores the address.
func WithListener(l net.Listener) Option {
	if l == nil {
		panic("WithListener: nil listener")
	}
	return func(c *config) { c.listener = l }
}

// WithReadTimeout sets the maximum duration for reading the entire request.
func WithReadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithReadTimeout: duration must be > 0")
	}
	return func(c *config) { c.readTimeout = d }
}

// WithWriteTimeout sets the maximum duration before timing out writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithWriteTimeout: duration must be > 0")
	}
	return func(c *config) { c.writeTimeout = d }
}

// WithIdleTimeout sets the keep-alive idle limit.
func WithIdleTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithIdleTimeout: duration must be > 0")
	}
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout sets the time allowed for graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("WithShutdownTimeout: duration must be > 0")
	}
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger sets the logger. Nil discards output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithBaseContext derives every request context from ctx, so values such as
// the environment reach handlers without middleware.
func WithBaseContext(ctx context.Context) Option {
	return func(c *config) { c.baseContext = ctx }
}

// WithErrorLog routes net/http's internal errors (TLS handshakes, hijack
// failures) to the given logger at warn level.
func WithErrorLog(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.errorLog = slog.NewLogLogger(l.Handler(), slog.LevelWarn)
		}
	}
}

// WithStartHook registers a callback that runs when the server begins listening.
func WithStartHook(h StartHook) Option {
	if h == nil {
		panic("WithStartHook: nil hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook registers a callback that runs after the server shuts down.
func WithStopHook(h StopHook) Option {
	if h == nil {
		panic("WithStopHook: nil hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}

// WithServer uses the provided http.Server instance. Timeouts already set on
// it take precedence over the configured ones.
func WithServer(srv *http.Server) Option {
	if srv == nil {
		panic("WithServer: nil server")
	}
	return func(c *config) { c.server = srv }
}
