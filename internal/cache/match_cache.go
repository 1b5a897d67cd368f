// Package cache memoizes match results in Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipe-catalog/backend/internal/matching"
)

const (
	GenerationKey = "match:generation"
	resultPrefix  = "match:result:"
	DefaultTTL    = 5 * time.Minute
)

// RedisMatchCache stores match pages under keys scoped by a generation
// counter. Bumping the generation orphans every earlier entry; orphans
// expire with their TTL.
type RedisMatchCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisMatchCache(client redis.Cmdable, ttl time.Duration) *RedisMatchCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisMatchCache{client: client, ttl: ttl}
}

// Generation returns the current generation. A missing counter is 0.
func (c *RedisMatchCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache generation: %w", err)
	}
	return gen, nil
}

// ResultKey returns the key for q under generation gen. Pantry order and
// duplicates do not change the key.
func ResultKey(gen int64, q matching.Query) string {
	ids := matching.NewPantry(q.Pantry).IDs()
	pantry := make([]string, len(ids))
	for i, id := range ids {
		pantry[i] = id.String()
	}

	canonical := strings.Join([]string{
		strings.Join(pantry, ","),
		strconv.FormatFloat(q.MinMatchPercentage, 'f', -1, 64),
		strconv.FormatBool(q.IncludePartialMatches),
		q.LanguageCode,
		q.DefaultLanguage,
		strconv.Itoa(q.Page),
		strconv.Itoa(q.Limit),
	}, "|")

	sum := sha256.Sum256([]byte(canonical))
	return resultPrefix + strconv.FormatInt(gen, 10) + ":" + hex.EncodeToString(sum[:])
}

// Get returns the cached page for key. A miss is (nil, false, nil).
func (c *RedisMatchCache) Get(ctx context.Context, key string) (*matching.PagedResult, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached result: %w", err)
	}

	var res matching.PagedResult
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &res, true, nil
}

// Set stores res under key for the cache TTL
func (c *RedisMatchCache) Set(ctx context.Context, key string, res *matching.PagedResult) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cached result: %w", err)
	}
	return nil
}

// Invalidate retires every cached result by bumping the generation
func (c *RedisMatchCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, GenerationKey).Err(); err != nil {
		return fmt.Errorf("failed to bump cache generation: %w", err)
	}
	return nil
}
