// Package requestid attaches a correlation id to every HTTP request.
//
// The middleware reuses a well formed X-Request-ID header sent by the client
// or a proxy, otherwise it generates a UUIDv4. The id is echoed in the
// response header and stored in the request context, where FromContext and
// LoggerExtractor pick it up.
//
//	r.Use(requestid.Middleware)
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
