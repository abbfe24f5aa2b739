package httpserver

import "errors"

var (
	// ErrStart indicates that the server failed to bind or serve.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that in-flight requests did not drain in time.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
	// ErrAlreadyRunning is returned by a second Run on the same Server.
	ErrAlreadyRunning = errors.New("server already running")
)
