package environment

import "strings"

// Environment represents application environment. Components consult its
// methods instead of comparing strings so that every production dependent
// decision lives in one place.
type Environment string

const (
	// Development for development environment.
	Development Environment = "development"
	// Production for production environment.
	Production Environment = "production"
	// Staging for staging environment.
	Staging Environment = "staging"
)

// Parse normalizes s, accepting short aliases ("prod", "dev", "stage").
// Unknown or empty values resolve to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

// UnmarshalText lets env parsers decode the type directly.
func (e *Environment) UnmarshalText(text []byte) error {
	*e = Parse(string(text))
	return nil
}

func (e Environment) String() string { return string(e) }

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool { return Parse(string(e)) == Production }

// IsDevelopment reports whether e is the development environment.
func (e Environment) IsDevelopment() bool { return Parse(string(e)) == Development }

// IsStaging reports whether e is the staging environment.
func (e Environment) IsStaging() bool { return Parse(string(e)) == Staging }

// ExposeErrorDetails reports whether internal error messages and codes may
// be returned to clients.
func (e Environment) ExposeErrorDetails() bool { return !e.IsProduction() }

// VerifyTLS reports whether outbound TLS peers must present a valid certificate.
func (e Environment) VerifyTLS() bool { return e.IsProduction() }

// Verbose reports whether debug level logging is enabled by default.
func (e Environment) Verbose() bool { return !e.IsProduction() }
