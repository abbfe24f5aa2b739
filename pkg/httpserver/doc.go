// Package httpserver runs the relay's http.Server with graceful shutdown.
//
// Run binds the listener, invokes start hooks with the resolved address and
// serves until its context is cancelled or the process receives SIGINT or
// SIGTERM. Shutdown then waits up to the configured timeout for in-flight
// submissions, whose SMTP round trip may take several seconds, before
// returning.
//
// Configuration comes from Config, loaded with the config package:
//
//	PORT                   listen port (default 3000)
//	HTTP_HOST              bind host (default all interfaces)
//	HTTP_READ_TIMEOUT      default 10s
//	HTTP_WRITE_TIMEOUT     default 30s
//	HTTP_IDLE_TIMEOUT      default 60s
//	HTTP_SHUTDOWN_TIMEOUT  default 10s
//
// Usage:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run wraps bind and serve errors with ErrStart; Shutdown wraps drain errors
// with ErrShutdown.
package httpserver
