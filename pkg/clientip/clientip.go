package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown is returned when neither a trusted header nor the socket address
// yields a valid IP.
const Unknown = "unknown"

var defaultHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// Resolver derives the client IP from trusted proxy headers, falling back to
// the socket address.
type Resolver struct {
	headers []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTrustedHeaders replaces the headers consulted before RemoteAddr.
// Calling it with no arguments makes the resolver use RemoteAddr only.
func WithTrustedHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = headers
	}
}

// New creates a Resolver. By default it trusts X-Forwarded-For, then X-Real-IP.
func New(opts ...Option) *Resolver {
	r := &Resolver{headers: defaultHeaders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IP returns the normalized client IP of req, or Unknown.
// Comma separated header values resolve to their first valid entry.
func (r *Resolver) IP(req *http.Request) string {
	for _, name := range r.headers {
		value := req.Header.Get(name)
		if value == "" {
			continue
		}
		for ip := range strings.SplitSeq(value, ",") {
			if parsed := parseIP(ip); parsed != "" {
				return parsed
			}
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		host = req.RemoteAddr
	}
	if parsed := parseIP(host); parsed != "" {
		return parsed
	}
	return Unknown
}

var defaultResolver = New()

// GetIP resolves the client IP with the default resolver.
func GetIP(r *http.Request) string {
	return defaultResolver.IP(r)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the IP is invalid.
func parseIP(ipStr string) string {
	ipStr = strings.TrimSpace(ipStr)
	if ipStr == "" {
		return ""
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return ""
	}

	return ip.String()
}
