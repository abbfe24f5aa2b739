package ratelimit

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "ratelimit:"

// takeScript mirrors MemoryStore.Take. Keys expire on their own at the end
// of the window, which covers purging.
var takeScript = redis.NewScript(`
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
local start = tonumber(redis.call('HGET', KEYS[1], 'start') or ARGV[3])
if now - start >= window then
  count = 0
  start = now
end
if count >= limit then
  return {0, count, start}
end
count = count + 1
redis.call('HSET', KEYS[1], 'count', count, 'start', start)
redis.call('PEXPIREAT', KEYS[1], start + window)
return {1, count, start}
`)

// RedisStore keeps fixed window counters in Redis so several relay
// instances share one limit.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to every key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a store on top of an existing client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Take implements Store.
func (s *RedisStore) Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (Entry, bool, error) {
	res, err := takeScript.Run(ctx, s.client, []string{s.prefix + key},
		limit, window.Milliseconds(), now.UnixMilli()).Int64Slice()
	if err != nil {
		return Entry{}, false, err
	}
	if len(res) != 3 {
		return Entry{}, false, errors.New("unexpected script reply")
	}

	return Entry{
		Count:       int(res[1]),
		WindowStart: time.UnixMilli(res[2]),
	}, res[0] == 1, nil
}

// Peek implements Store.
func (s *RedisStore) Peek(ctx context.Context, key string, window time.Duration, now time.Time) (Entry, error) {
	fields, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if err != nil {
		return Entry{}, err
	}
	if len(fields) == 0 {
		return Entry{}, nil
	}

	count, err := strconv.Atoi(fields["count"])
	if err != nil {
		return Entry{}, err
	}
	start, err := strconv.ParseInt(fields["start"], 10, 64)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{Count: count, WindowStart: time.UnixMilli(start)}
	if e.Expired(now, window) {
		return Entry{}, nil
	}
	return e, nil
}

// Delete implements Store.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
