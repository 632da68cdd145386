package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisWriteLocker serializes message writes per conversation with a redsync mutex.
//
// The upsert is atomic on its own, so the lock only orders racing writers. When the
// lock cannot be taken the write still runs, unlocked, and a warning is logged.
type RedisWriteLocker struct {
	rs  *redsync.Redsync
	ttl time.Duration
	log zerolog.Logger
}

// NewRedisWriteLocker creates the locker.
func NewRedisWriteLocker(client redis.UniversalClient, ttl time.Duration, log zerolog.Logger) *RedisWriteLocker {
	return &RedisWriteLocker{
		rs:  redsync.New(goredis.NewPool(client)),
		ttl: ttl,
		log: log.With().Str("component", "conversation-write-lock").Logger(),
	}
}

// LockName returns the mutex name for a conversation.
func LockName(conversationID string) string {
	return fmt.Sprintf("camus:%s:lock:conversation:%s", CacheVersion, conversationID)
}

// WithLock runs fn while holding the conversation mutex.
func (l *RedisWriteLocker) WithLock(ctx context.Context, conversationID string, fn func(ctx context.Context) error) error {
	mutex := l.rs.NewMutex(LockName(conversationID),
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(16),
		redsync.WithRetryDelay(25*time.Millisecond),
	)

	if err := mutex.LockContext(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		l.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to acquire write lock, writing unlocked")
		return fn(ctx)
	}

	defer func() {
		if _, err := mutex.UnlockContext(context.WithoutCancel(ctx)); err != nil {
			l.log.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to release write lock")
		}
	}()

	return fn(ctx)
}
