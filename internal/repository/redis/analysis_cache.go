package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"postPilot/business/analysis"
	"postPilot/domain"

	"github.com/redis/go-redis/v9"
)

// AnalysisCache keeps corrected analyses keyed by content hash so repeated
// analyses of the same text skip the classifier round trip.
type AnalysisCache struct {
	client *redis.Client
}

var _ analysis.Cache = (*AnalysisCache)(nil)

func NewAnalysisCache(client *redis.Client) *AnalysisCache {
	return &AnalysisCache{
		client: client,
	}
}

// Get returns (nil, nil) on a cache miss.
func (c *AnalysisCache) Get(ctx context.Context, key string) (*domain.Analysis, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis from Redis: %w", err)
	}

	var a domain.Analysis
	if err := json.Unmarshal([]byte(val), &a); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached analysis: %w", err)
	}

	return &a, nil
}

func (c *AnalysisCache) Set(ctx context.Context, key string, a *domain.Analysis, ttl time.Duration) error {
	jsonData, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store analysis in Redis: %w", err)
	}

	return nil
}
