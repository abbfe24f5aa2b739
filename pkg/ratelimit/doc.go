// Package ratelimit provides a fixed window request limiter with pluggable
// storage.
//
// A window opens with the first request of a key and lasts for the configured
// interval. While the key's count is below the limit each request is admitted
// and counted; once the limit is reached further requests are denied without
// touching the counter. Expired windows are dropped lazily: MemoryStore purges
// on every Take, RedisStore relies on key expiry.
//
// # Usage
//
//	store := ratelimit.NewMemoryStore()
//	limiter, err := ratelimit.NewFixedWindow(store, 5, time.Hour)
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Check(ctx, clientIP)
//	if err != nil {
//		return err
//	}
//	ratelimit.WriteHeaders(w, res)
//	if !res.Allowed {
//		// 429
//	}
//
// Use NewRedisStore when several processes must share one limit.
package ratelimit
