package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/evolfitness/booking-system/internal/api/metrics"
	"github.com/evolfitness/booking-system/internal/core/domain"
)

const (
	classListKey = "clases:all"
	classListTTL = 30 * time.Second
)

// ClassListCache caches the full, already-sorted class listing under a
// single key. The listing is small (a gym's daily schedule) and every write
// path invalidates it, so one key with a short TTL is enough.
type ClassListCache struct {
	client *redis.Client
}

// NewClassListCache creates a ClassListCache wrapping the given Redis client.
func NewClassListCache(client *redis.Client) *ClassListCache {
	return &ClassListCache{client: client}
}

// Get returns the cached listing, or (nil, nil) on a miss.
func (c *ClassListCache) Get(ctx context.Context) ([]*domain.Class, error) {
	payload, err := c.client.Get(ctx, classListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.ClassCacheTotal.WithLabelValues("miss").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("class cache get: %w", err)
	}

	var classes []*domain.Class
	if err := json.Unmarshal(payload, &classes); err != nil {
		return nil, fmt.Errorf("class cache decode: %w", err)
	}

	metrics.ClassCacheTotal.WithLabelValues("hit").Inc()
	return classes, nil
}

// Set stores the listing with a short TTL.
func (c *ClassListCache) Set(ctx context.Context, classes []*domain.Class) error {
	payload, err := json.Marshal(classes)
	if err != nil {
		return fmt.Errorf("class cache encode: %w", err)
	}
	return c.client.Set(ctx, classListKey, payload, classListTTL).Err()
}

// Invalidate drops the cached listing. Called after every class or roster
// mutation.
func (c *ClassListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, classListKey).Err()
}
