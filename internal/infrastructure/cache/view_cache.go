// Package cache keeps reconstructed conversation views in Redis and provides the
// optional per-conversation write lock.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/janhq/camus/internal/domain/conversation"
)

// CacheVersion is part of every key so a schema change never reads stale shapes.
const CacheVersion = "v1"

// generationTTL keeps a generation counter well past any rebuild still in flight.
const generationTTL = 24 * time.Hour

// ViewCacheKey returns the Redis key of a conversation view. The braces pin the view
// and its generation counter to one cluster slot.
func ViewCacheKey(conversationID string) string {
	return fmt.Sprintf("camus:%s:conversation:{%s}", CacheVersion, conversationID)
}

// GenerationKey returns the Redis key of the conversation's invalidation counter.
func GenerationKey(conversationID string) string {
	return ViewCacheKey(conversationID) + ":gen"
}

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1]. A missing
// counter reads as 0.
var setIfGeneration = redis.NewScript(`
local current = redis.call('GET', KEYS[2]) or '0'
if current ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`)

// RedisViewCache stores JSON encoded views with a TTL.
type RedisViewCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisViewCache creates the cache.
func NewRedisViewCache(client redis.UniversalClient, ttl time.Duration) *RedisViewCache {
	return &RedisViewCache{client: client, ttl: ttl}
}

// Get returns (nil, false, nil) on a miss.
func (c *RedisViewCache) Get(ctx context.Context, conversationID string) (*conversation.View, bool, error) {
	data, err := c.client.Get(ctx, ViewCacheKey(conversationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get conversation view: %w", err)
	}

	var view conversation.View
	if err := json.Unmarshal(data, &view); err != nil {
		// A corrupt entry behaves like a miss; the next Set replaces it.
		return nil, false, nil
	}
	return &view, true, nil
}

// Generation returns the invalidation counter of the conversation, 0 when unset.
func (c *RedisViewCache) Generation(ctx context.Context, conversationID string) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey(conversationID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get conversation generation: %w", err)
	}
	return gen, nil
}

// Set stores the view if no invalidation happened since generation was read.
func (c *RedisViewCache) Set(ctx context.Context, conversationID string, generation int64, view *conversation.View) (bool, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return false, fmt.Errorf("encode conversation view: %w", err)
	}
	stored, err := setIfGeneration.Run(ctx, c.client,
		[]string{ViewCacheKey(conversationID), GenerationKey(conversationID)},
		strconv.FormatInt(generation, 10), data, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("set conversation view: %w", err)
	}
	return stored == 1, nil
}

// Invalidate drops the cached view and advances the generation, which also
// rejects any fill that started before this call.
func (c *RedisViewCache) Invalidate(ctx context.Context, conversationID string) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(conversationID))
		pipe.Expire(ctx, GenerationKey(conversationID), generationTTL)
		pipe.Unlink(ctx, ViewCacheKey(conversationID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate conversation view: %w", err)
	}
	return nil
}

// NoopViewCache is used when no Redis endpoint is configured. Every read misses.
type NoopViewCache struct{}

func (NoopViewCache) Get(context.Context, string) (*conversation.View, bool, error) {
	return nil, false, nil
}

func (NoopViewCache) Generation(context.Context, string) (int64, error) { return 0, nil }

func (NoopViewCache) Set(context.Context, string, int64, *conversation.View) (bool, error) {
	return false, nil
}

func (NoopViewCache) Invalidate(context.Context, string) error { return nil }
