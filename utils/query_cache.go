package utils

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/gob"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hash op+params so Redis keys stay short.
func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// QueryCache holds query results keyed by (operation, parameters).
// Keys are namespaced under "cache:<op>:" so a whole operation can be
// invalidated with one scan. Values are gob-encoded.
type QueryCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewQueryCache(rdb *redis.Client, ttl time.Duration) *QueryCache {
	return &QueryCache{rdb: rdb, ttl: ttl}
}

// OpEventsList is the one cached operation today: distinct (page, size)
// pairs cache independently because params feeds the key hash.
const OpEventsList = "events:list"

func cacheKey(op, params string) string {
	return "cache:" + op + ":" + sha1Hex(op+"|"+params)
}

// Get decodes a cached result into out. Returns false on miss or decode
// failure; a broken entry just behaves like a miss.
func (q *QueryCache) Get(ctx context.Context, op, params string, out any) bool {
	b, err := q.rdb.Get(ctx, cacheKey(op, params)).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := gob.NewDecoder(bytes.NewReader(b)).Decode(out); err != nil {
		return false
	}
	return true
}

// Set stores v under (op, params). Encoding or Redis errors are swallowed:
// the cache is an optimization, never a failure source.
func (q *QueryCache) Set(ctx context.Context, op, params string, v any) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return
	}
	_ = q.rdb.Set(ctx, cacheKey(op, params), buf.Bytes(), q.ttl).Err()
}

// InvalidateEvents marks every cached event query stale so the next read
// refetches. Called after every mutation regardless of the envelope's
// success flag.
func (q *QueryCache) InvalidateEvents(ctx context.Context) {
	iter := q.rdb.Scan(ctx, 0, "cache:events:*", 0).Iterator()
	for iter.Next(ctx) {
		_ = q.rdb.Del(ctx, iter.Val()).Err()
	}
}
