package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/loan-amortizer/internal/domain"
	customError "github.com/segyhp/loan-amortizer/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const (
	scheduleKeyPrefix = "schedule:"
	quoteKeyPrefix    = "quote:"
)

type redisScheduleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewScheduleCache returns a Redis-backed cache. A zero ttl stores entries without expiry.
func NewScheduleCache(client *redis.Client, ttl time.Duration) ScheduleCache {
	return &redisScheduleCache{client: client, ttl: ttl}
}

func (c *redisScheduleCache) GetSchedule(ctx context.Context, key string) (*domain.ScheduleResult, error) {
	var result domain.ScheduleResult
	if err := c.get(ctx, scheduleKeyPrefix+key, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *redisScheduleCache) SetSchedule(ctx context.Context, key string, result *domain.ScheduleResult) error {
	return c.set(ctx, scheduleKeyPrefix+key, result)
}

func (c *redisScheduleCache) GetQuote(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var quote domain.Quote
	if err := c.get(ctx, quoteKeyPrefix+id.String(), &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *redisScheduleCache) SetQuote(ctx context.Context, quote *domain.Quote) error {
	return c.set(ctx, quoteKeyPrefix+quote.ID.String(), quote)
}

func (c *redisScheduleCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// get returns ErrCacheMiss for absent keys; every other failure is a CACHE_ERROR.
func (c *redisScheduleCache) get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return customError.ErrCacheMiss
	}
	if err != nil {
		return customError.WrapCacheError(err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return customError.WrapCacheError(fmt.Errorf("decoding cached %s: %w", key, err))
	}
	return nil
}

func (c *redisScheduleCache) set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return customError.WrapCacheError(fmt.Errorf("encoding %s: %w", key, err))
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return customError.WrapCacheError(err)
	}
	return nil
}
