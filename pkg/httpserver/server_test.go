package httpserver_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iotx/contactrelay/pkg/httpserver"
)

type ctxKey struct{}

func listen(t *testing.T) net.Listener {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "unable to get free port")
	return l
}

func startedHook(ch chan net.Addr) httpserver.Option {
	return httpserver.WithStartHook(func(_ context.Context, addr net.Addr) { ch <- addr })
}

func waitRun(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err, "run")
	case <-time.After(2 * time.Second):
		require.Fail(t, "run did not finish")
	}
}

func TestConfigAddr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":3000", httpserver.Config{Port: 3000}.Addr())
	assert.Equal(t, "127.0.0.1:8080", httpserver.Config{Host: "127.0.0.1", Port: 8080}.Addr())
	assert.Equal(t, "[::1]:3000", httpserver.Config{Host: "::1", Port: 3000}.Addr())
}

func TestRunAndShutdown(t *testing.T) {
	t.Parallel()

	started := make(chan net.Addr, 1)
	srv := httpserver.New(
		httpserver.WithListener(listen(t)),
		httpserver.WithShutdownTimeout(100*time.Millisecond),
		startedHook(started),
	)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
	}()

	addr := <-started
	assert.Equal(t, addr, srv.Addr())

	resp, err := http.Get("http://" + addr.String())
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	cancel()
	waitRun(t, done)
	require.NoError(t, srv.Shutdown(context.Background()), "shutdown after run is a no-op")
}

func TestRunFromConfig(t *testing.T) {
	t.Parallel()

	started := make(chan net.Addr, 1)
	srv := httpserver.NewFromConfig(httpserver.Config{Host: "127.0.0.1", Port: 0, ShutdownTimeout: 50 * time.Millisecond},
		startedHook(started))
	assert.Nil(t, srv.Addr())

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), nil) }()

	addr := <-started
	tcp, ok := addr.(*net.TCPAddr)
	require.True(t, ok)
	assert.NotZero(t, tcp.Port, "port 0 resolves to an ephemeral port")

	resp, err := http.Get("http://" + addr.String())
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "nil handler serves 404")

	require.NoError(t, srv.Shutdown(context.Background()))
	waitRun(t, done)
}

func TestStartError(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(httpserver.WithAddr(":invalid"))
	err := srv.Run(context.Background(), http.NotFoundHandler())
	require.Error(t, err)
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestPortInUse(t *testing.T) {
	t.Parallel()

	busy := listen(t)
	t.Cleanup(func() { _ = busy.Close() })

	srv := httpserver.New(httpserver.WithAddr(busy.Addr().String()))
	err := srv.Run(context.Background(), http.NotFoundHandler())
	assert.ErrorIs(t, err, httpserver.ErrStart)
}

func TestHooks(t *testing.T) {
	t.Parallel()

	var stopped atomic.Bool
	started := make(chan net.Addr, 1)
	srv := httpserver.New(
		httpserver.WithListener(listen(t)),
		startedHook(started),
		httpserver.WithStopHook(func(context.Context) { stopped.Store(true) }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, http.NewServeMux()) }()
	<-started
	cancel()
	waitRun(t, done)

	assert.True(t, stopped.Load(), "stop hook not executed")
}

func TestAlreadyRunning(t *testing.T) {
	t.Parallel()

	started := make(chan net.Addr, 1)
	srv := httpserver.New(
		httpserver.WithListener(listen(t)),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		startedHook(started),
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, http.NewServeMux()) }()
	<-started

	err := srv.Run(context.Background(), http.NewServeMux())
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	cancel()
	waitRun(t, done)
}

func TestDoubleShutdown(t *testing.T) {
	t.Parallel()

	started := make(chan net.Addr, 1)
	srv := httpserver.New(
		httpserver.WithListener(listen(t)),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		startedHook(started),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), http.NewServeMux()) }()
	<-started

	require.NoError(t, srv.Shutdown(context.Background()), "first shutdown")
	require.NoError(t, srv.Shutdown(context.Background()), "second shutdown")
	waitRun(t, done)
}

func TestInFlightRequestDrains(t *testing.T) {
	t.Parallel()

	started := make(chan net.Addr, 1)
	entered := make(chan struct{})
	srv := httpserver.New(
		httpserver.WithListener(listen(t)),
		httpserver.WithShutdownTimeout(time.Second),
		startedHook(started),
	)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			close(entered)
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("sent"))
		}))
	}()
	addr := <-started

	got := make(chan string, 1)
	go func() {
		resp, err := http.Get("http://" + addr.String())
		if err != nil {
			got <- err.Error()
			return
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		got <- string(b)
	}()

	<-entered
	cancel()
	assert.Equal(t, "sent", <-got)
	waitRun(t, done)
}

func TestBaseContext(t *testing.T) {
	t.Parallel()

	started := make(chan net.Addr, 1)
	base := context.WithValue(context.Background(), ctxKey{}, "relay")
	srv := httpserver.New(
		httpserver.WithListener(listen(t)),
		httpserver.WithBaseContext(base),
		startedHook(started),
	)
	done := make(chan error, 1)
	go func() {
		done <- srv.Run(context.Background(), http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, _ := r.Context().Value(ctxKey{}).(string)
			_, _ = w.Write([]byte(v))
		}))
	}()
	addr := <-started

	resp, err := http.Get("http://" + addr.String())
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "relay", string(b))

	require.NoError(t, srv.Shutdown(context.Background()))
	waitRun(t, done)
}

func TestOptionsApply(t *testing.T) {
	t.Parallel()

	hs := &http.Server{IdleTimeout: 7 * time.Second}
	started := make(chan net.Addr, 1)
	srv := httpserver.New(
		httpserver.WithServer(hs),
		httpserver.WithListener(listen(t)),
		httpserver.WithReadTimeout(time.Second),
		httpserver.WithWriteTimeout(2*time.Second),
		httpserver.WithIdleTimeout(3*time.Second),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		httpserver.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		httpserver.WithErrorLog(slog.New(slog.NewTextHandler(io.Discard, nil))),
		startedHook(started),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), nil) }()
	<-started

	assert.Equal(t, time.Second, hs.ReadTimeout)
	assert.Equal(t, time.Second, hs.ReadHeaderTimeout)
	assert.Equal(t, 2*time.Second, hs.WriteTimeout)
	assert.Equal(t, 7*time.Second, hs.IdleTimeout, "preset value wins")
	assert.NotNil(t, hs.ErrorLog)
	assert.NotNil(t, hs.Handler)

	require.NoError(t, srv.Shutdown(context.Background()))
	waitRun(t, done)
}

func TestSignalShutdown(t *testing.T) {
	// not parallel: SIGTERM reaches every Run in the process
	started := make(chan net.Addr, 1)
	srv := httpserver.New(
		httpserver.WithListener(listen(t)),
		httpserver.WithShutdownTimeout(50*time.Millisecond),
		startedHook(started),
	)
	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), http.NewServeMux()) }()
	<-started

	p, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, p.Signal(syscall.SIGTERM))
	waitRun(t, done)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   func()
	}{
		{"addr", func() { httpserver.WithAddr("") }},
		{"listener", func() { httpserver.WithListener(nil) }},
		{"read", func() { httpserver.WithReadTimeout(-time.Second) }},
		{"write", func() { httpserver.WithWriteTimeout(-time.Second) }},
		{"idle", func() { httpserver.WithIdleTimeout(-time.Second) }},
		{"shutdown", func() { httpserver.WithShutdownTimeout(-time.Second) }},
		{"server", func() { httpserver.WithServer(nil) }},
		{"start hook", func() { httpserver.WithStartHook(nil) }},
		{"stop hook", func() { httpserver.WithStopHook(nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, tt.fn)
		})
	}

	assert.NotPanics(t, func() { httpserver.WithLogger(nil) })
}
