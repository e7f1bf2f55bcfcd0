package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rizzedin/rizzedin-backend/internal/domain"
)

const (
	chatLockPrefix = "chat:lock:"
	// defaultTTL must outlive the slowest scoring-model call so a crashed
	// holder cannot wedge the chat forever.
	defaultTTL = 90 * time.Second
)

// ChatLock serializes sends per chat with a redis SETNX lease. Chat sends
// that lose the race fail fast with domain.ErrChatBusy instead of queueing;
// the 10th-message evaluation must fire exactly once.
type ChatLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChatLock(client *redis.Client) *ChatLock {
	return &ChatLock{client: client, ttl: defaultTTL}
}

// Acquire takes the lock for chatID. The returned release func is safe to
// call from a defer; release errors are swallowed since the TTL reclaims
// the key anyway.
func (l *ChatLock) Acquire(ctx context.Context, chatID string) (func(), error) {
	key := chatLockPrefix + chatID

	ok, err := l.client.SetNX(ctx, key, 1, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire chat lock: %w", err)
	}
	if !ok {
		return nil, domain.ErrChatBusy
	}

	return func() {
		_ = l.client.Del(context.Background(), key).Err()
	}, nil
}
