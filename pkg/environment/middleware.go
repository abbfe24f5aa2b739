package environment

import "net/http"

// Middleware attaches env to every request context.
func (e Environment) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), e)))
	})
}
