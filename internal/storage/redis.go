package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"nuclight.org/squashbot/internal/game"
)

const preferenceKeyPrefix = "squashbot:prefs"

// RedisPreferences keeps choice counters in one sorted set per user and category.
type RedisPreferences struct {
	rdb *redis.Client
}

// NewRedisPreferences connects to redisURL (redis:// or rediss://) and pings it.
func NewRedisPreferences(ctx context.Context, redisURL string) (*RedisPreferences, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opts, err := redis.ParseURL(strings.TrimSpace(redisURL))
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisPreferences(rdb), nil
}

func newRedisPreferences(rdb *redis.Client) *RedisPreferences {
	return &RedisPreferences{rdb: rdb}
}

func (r *RedisPreferences) Close() error {
	return r.rdb.Close()
}

func (r *RedisPreferences) IncrementScore(ctx context.Context, userID int64, category game.Category, name string) error {
	if err := r.rdb.ZIncrBy(ctx, preferenceKey(userID, category), 1, name).Err(); err != nil {
		return fmt.Errorf("zincrby: %w", err)
	}
	return nil
}

// TopScored returns up to limit names with the highest scores. Redis orders equal
// scores by member in reverse; they are re-sorted by name here.
func (r *RedisPreferences) TopScored(ctx context.Context, userID int64, category game.Category, limit int) ([]string, error) {
	if limit <= 0 {
		return nil, nil
	}
	entries, err := r.rdb.ZRevRangeWithScores(ctx, preferenceKey(userID, category), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange: %w", err)
	}
	names := make([]string, 0, len(entries))
	for i := 0; i < len(entries); {
		j := i
		for j < len(entries) && entries[j].Score == entries[i].Score {
			j++
		}
		group := make([]string, 0, j-i)
		for _, z := range entries[i:j] {
			group = append(group, fmt.Sprint(z.Member))
		}
		reverse(group)
		names = append(names, group...)
		i = j
	}
	return names, nil
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func preferenceKey(userID int64, category game.Category) string {
	return fmt.Sprintf("%s:%d:%s", preferenceKeyPrefix, userID, category)
}

var _ game.PreferenceStore = (*RedisPreferences)(nil)
