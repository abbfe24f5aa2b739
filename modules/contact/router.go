package contact

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/iotx/contactrelay/handler"
	"github.com/iotx/contactrelay/pkg/clientip"
	"github.com/iotx/contactrelay/pkg/environment"
	"github.com/iotx/contactrelay/pkg/logger"
	"github.com/iotx/contactrelay/pkg/requestid"
)

// Mountable is a module that serves a handler under a path prefix.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures the relay router.
type RouterOptions struct {
	// API is mounted at /api.
	API Mountable

	// FrontendURL is the only origin allowed by CORS.
	FrontendURL string

	// GlobalRateLimit caps requests per client IP per GlobalRateWindow across
	// all routes. Zero disables it.
	GlobalRateLimit  int
	GlobalRateWindow time.Duration

	Env      environment.Environment
	ClientIP *clientip.Resolver
	Logger   *slog.Logger
}

// Router builds the relay's HTTP handler.
//
//	svc, _ := contactsvc.NewService(limiter, sender, cfg.Recipient)
//	r := contact.Router(contact.RouterOptions{
//	    API:         contact.NewModule(svc, env),
//	    FrontendURL: "https://iot-x.io",
//	    Env:         env,
//	})
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	resolver := opts.ClientIP
	if resolver == nil {
		resolver = clientip.New()
	}

	r := chi.NewRouter()

	r.Use(requestid.Middleware)
	r.Use(recoverer(log))
	r.Use(opts.Env.Middleware)
	r.Use(resolver.Middleware)
	r.Use(middleware.SetHeader("X-Content-Type-Options", "nosniff"))
	r.Use(middleware.SetHeader("X-Frame-Options", "DENY"))
	r.Use(middleware.SetHeader("Referrer-Policy", "no-referrer"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{opts.FrontendURL},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	if opts.GlobalRateLimit > 0 {
		window := opts.GlobalRateWindow
		if window <= 0 {
			window = time.Minute
		}
		r.Use(httprate.Limit(opts.GlobalRateLimit, window,
			httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
				return resolver.IP(r), nil
			}),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				_ = handler.WriteJSON(w, http.StatusTooManyRequests, Reply{Message: MsgTooManyRequest})
			}),
		))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		_ = handler.WriteJSON(w, http.StatusNotFound, Reply{Message: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		_ = handler.WriteJSON(w, http.StatusMethodNotAllowed, Reply{Message: "Method not allowed"})
	})

	if opts.API != nil {
		r.Mount("/api", opts.API.Handle())
	}

	return r
}

// recoverer answers panics with the generic JSON failure so a bad request can
// never take the process down.
func recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.ErrorContext(r.Context(), "panic while serving request",
					logger.Event("contact.unexpected"),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)
				_ = handler.WriteJSON(w, http.StatusInternalServerError, Reply{Message: MsgUnexpected})
			}()
			next.ServeHTTP(w, r)
		})
	}
}
