package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Toyz-Mini/abangbob-forecast/internal/config"
	"github.com/Toyz-Mini/abangbob-forecast/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	forecastKeyPrefix     = "forecast:summary"
	forecastScanBatchSize = 100
)

// ForecastCache memoizes assembled forecast results keyed by a content hash of
// the engine input, so identical snapshots never recompute.
type ForecastCache interface {
	Get(ctx context.Context, inputHash string) (*domain.ForecastResult, bool, error)
	Set(ctx context.Context, inputHash string, result domain.ForecastResult) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopForecastCache struct{}

func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, inputHash string) (*domain.ForecastResult, bool, error) {
	key := buildForecastKey(inputHash)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var result domain.ForecastResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return &result, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, inputHash string, result domain.ForecastResult) error {
	key := buildForecastKey(inputHash)
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, forecastScanBatchSize)
}

func (n *noopForecastCache) Get(ctx context.Context, inputHash string) (*domain.ForecastResult, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) Set(ctx context.Context, inputHash string, result domain.ForecastResult) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildForecastKey(inputHash string) string {
	if inputHash == "" {
		inputHash = "default"
	}
	return fmt.Sprintf("%s:%s", forecastKeyPrefix, inputHash)
}
