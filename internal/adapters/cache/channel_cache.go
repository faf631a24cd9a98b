// Package cache provides a Redis backed cache for channel profile lookups.
// Cache failures never surface to callers: a miss is returned instead so the
// read path falls through to the database.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	portssvc "github.com/vidora-app/vidora_backend/internal/core/ports/services"
)

type ChannelProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ portssvc.ChannelProfileCache = (*ChannelProfileCache)(nil)

// NewChannelProfileCache connects to Redis at addr. It returns nil when addr
// is empty or the server is unreachable; callers should substitute the no-op
// cache in that case.
func NewChannelProfileCache(ctx context.Context, addr, password string, ttl time.Duration) *ChannelProfileCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil
	}
	return &ChannelProfileCache{client: client, ttl: ttl}
}

// Keys are namespaced per channel so an invalidation can match every viewer
// variant with one pattern: channel:<username>:viewer:<id|anon>.
func profileKey(username, viewerID string) string {
	if viewerID == "" {
		viewerID = "anon"
	}
	return fmt.Sprintf("channel:%s:viewer:%s", username, viewerID)
}

func (c *ChannelProfileCache) GetChannelProfile(ctx context.Context, username, viewerID string) ([]byte, bool) {
	payload, err := c.client.Get(ctx, profileKey(username, viewerID)).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *ChannelProfileCache) SetChannelProfile(ctx context.Context, username, viewerID string, payload []byte) {
	_ = c.client.Set(ctx, profileKey(username, viewerID), payload, c.ttl).Err()
}

func (c *ChannelProfileCache) InvalidateChannel(ctx context.Context, username string) {
	pattern := fmt.Sprintf("channel:%s:viewer:*", username)
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	keys := make([]string, 0, 4)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if iter.Err() != nil || len(keys) == 0 {
		return
	}
	_ = c.client.Del(ctx, keys...).Err()
}

// NoopChannelProfileCache is used when Redis is not configured. Every read is
// a miss and writes are discarded.
type NoopChannelProfileCache struct{}

var _ portssvc.ChannelProfileCache = NoopChannelProfileCache{}

func (NoopChannelProfileCache) GetChannelProfile(context.Context, string, string) ([]byte, bool) {
	return nil, false
}

func (NoopChannelProfileCache) SetChannelProfile(context.Context, string, string, []byte) {}

func (NoopChannelProfileCache) InvalidateChannel(context.Context, string) {}
