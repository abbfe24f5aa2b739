package ratelimit

import (
	"math"
	"net/http"
	"strconv"
)

// WriteHeaders sets the X-RateLimit-* headers for result, plus Retry-After
// when the request was denied.
func WriteHeaders(w http.ResponseWriter, result *Result) {
	if result == nil {
		return
	}

	h := w.Header()
	h.Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

	if !result.Allowed {
		// whole seconds, rounded up so clients never retry early
		retryAfter := max(int(math.Ceil(result.RetryAfter().Seconds())), 1)
		h.Set("Retry-After", strconv.Itoa(retryAfter))
	}
}
