// Package contact exposes the contact relay over HTTP.
//
// Routes, mounted under /api by Router:
//
//	GET  /api/health   -> 200 {"status":"ok"}
//	POST /api/contact  -> {"success":bool,"message":string,"errorCode"?:string}
//
// Router adds the request id, panic recovery, security headers, single-origin
// CORS and an optional per-IP flood guard in front of every route. The
// per-IP contact limit itself lives in the contact service; its verdict is
// reported in X-RateLimit-* headers.
package contact
