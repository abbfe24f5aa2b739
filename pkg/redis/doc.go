// Package redis connects to the Redis instance that backs shared rate limit
// counters when the relay runs as more than one process.
//
// Connect parses RATE_LIMIT_REDIS_URL, pings the server and retries with a
// fixed interval until the connect timeout elapses. Healthcheck returns a
// ping check suitable for startup logging.
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		...
//		store := ratelimit.NewRedisStore(client)
//	}
package redis
