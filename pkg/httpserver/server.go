package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/iotx/contactrelay/pkg/logger"
)

type config struct {
	addr            string
	listener        net.Listener
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	server          *http.Server
	logger          *slog.Logger
	errorLog        *log.Logger
	baseContext     context.Context
	startHooks      []StartHook
	stopHooks       []StopHook
}

func defaultConfig() *config {
	return &config{
		addr:            ":3000",
		shutdownTimeout: 10 * time.Second,
	}
}

// Server runs one http.Server until its context ends or the process receives
// SIGINT or SIGTERM, then drains in-flight requests.
type Server struct {
	cfg  *config
	log  *slog.Logger
	once sync.Once

	mu   sync.Mutex
	srv  *http.Server
	addr net.Addr
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	l := cfg.logger
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return &Server{cfg: cfg, log: l.With(logger.Component("httpserver"))}
}

// Addr returns the bound address, or nil before Run has bound the listener.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run binds the listener, serves handler and blocks until shutdown.
// Bind and serve failures are wrapped with ErrStart.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	srv := s.prepare(handler)
	s.srv = srv
	s.mu.Unlock()

	ln := s.cfg.listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", srv.Addr)
		if err != nil {
			return errors.Join(ErrStart, fmt.Errorf("listen %s: %w", srv.Addr, err))
		}
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	s.log.InfoContext(ctx, "server listening",
		logger.Event("http.listen"),
		slog.String("addr", ln.Addr().String()))
	for _, h := range s.cfg.startHooks {
		h(ctx, ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	var runErr error
	select {
	case <-ctx.Done():
		s.log.InfoContext(ctx, "context done, shutting down", logger.Event("http.shutdown"))
		runErr = s.drain(errCh)
	case sig := <-stop:
		s.log.InfoContext(ctx, "signal received, shutting down",
			logger.Event("http.shutdown"),
			slog.String("signal", sig.String()))
		runErr = s.drain(errCh)
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// prepare must be called with mu held.
func (s *Server) prepare(handler http.Handler) *http.Server {
	cfg := s.cfg
	srv := cfg.server
	if srv == nil {
		srv = &http.Server{}
	}
	if srv.Addr == "" {
		srv.Addr = cfg.addr
	}
	if srv.ReadTimeout == 0 {
		srv.ReadTimeout = cfg.readTimeout
	}
	if srv.ReadHeaderTimeout == 0 {
		srv.ReadHeaderTimeout = cfg.readTimeout
	}
	if srv.WriteTimeout == 0 {
		srv.WriteTimeout = cfg.writeTimeout
	}
	if srv.IdleTimeout == 0 {
		srv.IdleTimeout = cfg.idleTimeout
	}
	if srv.ErrorLog == nil {
		srv.ErrorLog = cfg.errorLog
	}
	if cfg.baseContext != nil && srv.BaseContext == nil {
		base := cfg.baseContext
		srv.BaseContext = func(net.Listener) context.Context { return base }
	}
	srv.Handler = handler
	return srv
}

func (s *Server) drain(errCh <-chan error) error {
	if err := s.Shutdown(context.Background()); err != nil {
		s.log.Error("shutdown failed", logger.Event("http.shutdown"), logger.Error(err))
	}
	return <-errCh
}

// Shutdown stops the server gracefully, waiting up to the shutdown timeout
// for in-flight requests. It is safe for repeated calls.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		s.mu.Lock()
		srv := s.srv
		s.mu.Unlock()
		if srv == nil {
			return
		}

		start := time.Now()
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
		for _, h := range s.cfg.stopHooks {
			h(ctx)
		}
		s.log.InfoContext(ctx, "server stopped",
			logger.Event("http.stopped"),
			logger.Duration(time.Since(start)))
	})

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
