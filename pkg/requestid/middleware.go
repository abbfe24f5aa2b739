package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

const (
	Header      = "X-Request-ID"
	maxIDLength = 128
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Generator produces fresh request ids.
type Generator func() string

// Option configures the middleware.
type Option func(*settings)

type settings struct {
	generate Generator
	trust    bool
}

// WithGenerator replaces the default UUIDv4 generator.
func WithGenerator(g Generator) Option {
	return func(s *settings) {
		if g != nil {
			s.generate = g
		}
	}
}

// WithoutClientIDs ignores ids supplied by clients and always generates one.
func WithoutClientIDs() Option {
	return func(s *settings) { s.trust = false }
}

// New returns a middleware that reuses a well formed incoming X-Request-ID
// or generates a new one, echoes it in the response and stores it in the
// request context.
func New(opts ...Option) func(http.Handler) http.Handler {
	s := &settings{generate: uuid.NewString, trust: true}
	for _, opt := range opts {
		opt(s)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(Header)
			if !s.trust || !valid(id) {
				id = s.generate()
			}
			w.Header().Set(Header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

// Middleware is New with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

func valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
