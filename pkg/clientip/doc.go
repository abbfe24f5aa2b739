// Package clientip resolves the originating client's IP address of an
// *http.Request.
//
// A Resolver walks its trusted headers in order (X-Forwarded-For, then
// X-Real-IP by default), using the first valid entry of comma separated
// values, and falls back to the TCP peer address. When nothing parses the
// constant Unknown is returned, so the result is always usable as a rate
// limit key.
//
// # Usage
//
//	resolver := clientip.New()
//	r.Use(resolver.Middleware)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		ip := clientip.FromContext(r.Context())
//		...
//	}
//
// Deployments without a reverse proxy should not trust forwarding headers:
//
//	resolver := clientip.New(clientip.WithTrustedHeaders())
package clientip
