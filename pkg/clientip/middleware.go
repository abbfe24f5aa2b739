package clientip

import "net/http"

// Middleware stores the IP resolved by r in the request context.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := WithContext(req.Context(), r.IP(req))
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// Middleware stores the IP resolved by the default resolver in the request context.
func Middleware(next http.Handler) http.Handler {
	return defaultResolver.Middleware(next)
}
