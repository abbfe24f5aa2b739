// Package environment describes the deployment environment of the process
// as a single value that other components consult.
//
// Environment is a typed string (Development, Staging, Production) whose
// methods answer the questions scattered environment checks usually ask:
// IsProduction, ExposeErrorDetails, VerifyTLS and Verbose. Construct it once
// from configuration and inject it where responses, transports or loggers
// are built.
//
// The value can also travel through a request: Environment.Middleware stores
// it in the context, FromContext reads it back and LoggerExtractor turns it
// into an "env" slog attribute.
//
// # Usage
//
//	env := environment.Parse(os.Getenv("NODE_ENV"))
//
//	r := chi.NewRouter()
//	r.Use(env.Middleware)
//
//	if env.ExposeErrorDetails() {
//		resp.ErrorCode = code
//	}
package environment
