package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/campus-match/internal/config"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForPending is the per-viewer pending-presentation record.
func (c *RedisCache) KeyForPending(viewerID uint64) string {
	return fmt.Sprintf("pending:viewer:%d", viewerID)
}

// KeyForMatchCount caches the number of matches of a member.
func (c *RedisCache) KeyForMatchCount(memberID uint64) string {
	return fmt.Sprintf("matches:count:%d", memberID)
}

// SetPending remembers the candidate just presented to viewerID.
// A newer presentation replaces the older one.
func (c *RedisCache) SetPending(ctx context.Context, viewerID, candidateID uint64, ttl time.Duration) error {
	return c.Client.Set(ctx, c.KeyForPending(viewerID), candidateID, ttl).Err()
}

// claimPending deletes KEYS[1] only while it still holds ARGV[1].
var claimPending = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ClaimPending consumes the pending record if it still points at
// candidateID. Only one caller can claim a presentation; a record that
// was replaced, claimed or expired yields false.
func (c *RedisCache) ClaimPending(ctx context.Context, viewerID, candidateID uint64) (bool, error) {
	n, err := claimPending.Run(ctx, c.Client,
		[]string{c.KeyForPending(viewerID)},
		strconv.FormatUint(candidateID, 10),
	).Int()
	if err != nil {
		return false, fmt.Errorf("claim pending for %d: %w", viewerID, err)
	}
	return n == 1, nil
}

// GetMatchCount returns ok=false on cache miss. A hit refreshes the TTL.
func (c *RedisCache) GetMatchCount(ctx context.Context, memberID uint64, ttl time.Duration) (int64, bool, error) {
	key := c.KeyForMatchCount(memberID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil // cache miss
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	// refresh TTL on access
	_ = c.Client.Expire(ctx, key, ttl).Err()
	return n, true, nil
}

func (c *RedisCache) SetMatchCount(ctx context.Context, memberID uint64, count int64, ttl time.Duration) error {
	return c.Client.Set(ctx, c.KeyForMatchCount(memberID), count, ttl).Err()
}

// InvalidateMatchCount drops cached counts so the next read hits the DB.
func (c *RedisCache) InvalidateMatchCount(ctx context.Context, memberIDs ...uint64) error {
	if len(memberIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		keys = append(keys, c.KeyForMatchCount(id))
	}
	return c.Client.Del(ctx, keys...).Err()
}
