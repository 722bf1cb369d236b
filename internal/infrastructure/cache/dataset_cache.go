package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bapenda-jatim/sts-monitoring/internal/domain/sts"
	"golang.org/x/sync/singleflight"
)

// DatasetLoader produces a fresh enriched dataset from the source.
type DatasetLoader func(ctx context.Context) (sts.Dataset, error)

// DatasetCache holds the enriched dataset with a TTL. Concurrent callers
// hitting an expired cache share one reload; the cached value stays
// readable while the reload runs.
type DatasetCache struct {
	loader DatasetLoader
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	data     sts.Dataset
	loadedAt time.Time

	group singleflight.Group
}

// DatasetCacheOption is a functional option for DatasetCache configuration
type DatasetCacheOption func(*DatasetCache)

// WithClock overrides the time source, used by tests to control expiry
func WithClock(now func() time.Time) DatasetCacheOption {
	return func(c *DatasetCache) {
		c.now = now
	}
}

// NewDatasetCache creates a DatasetCache with the given loader and TTL
func NewDatasetCache(loader DatasetLoader, ttl time.Duration, opts ...DatasetCacheOption) *DatasetCache {
	c := &DatasetCache{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached dataset, reloading through the loader when the TTL
// has passed or nothing is cached yet.
func (c *DatasetCache) Get(ctx context.Context) (sts.Dataset, error) {
	c.mu.RLock()
	if !c.loadedAt.IsZero() && c.now().Sub(c.loadedAt) < c.ttl {
		data := c.data
		c.mu.RUnlock()
		return data, nil
	}
	c.mu.RUnlock()

	return c.reload(ctx)
}

// Refresh discards the cached dataset and loads a fresh one
func (c *DatasetCache) Refresh(ctx context.Context) (sts.Dataset, error) {
	c.Invalidate()
	return c.reload(ctx)
}

// Invalidate drops the cached dataset so the next Get reloads
func (c *DatasetCache) Invalidate() {
	c.mu.Lock()
	c.data = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

// LoadedAt returns when the cached dataset was loaded, zero if nothing is cached
func (c *DatasetCache) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

func (c *DatasetCache) reload(ctx context.Context) (sts.Dataset, error) {
	v, err, _ := c.group.Do("dataset", func() (any, error) {
		// Another caller may have finished a reload while this one waited.
		c.mu.RLock()
		if !c.loadedAt.IsZero() && c.now().Sub(c.loadedAt) < c.ttl {
			data := c.data
			c.mu.RUnlock()
			return data, nil
		}
		c.mu.RUnlock()

		data, err := c.loader(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.data = data
		c.loadedAt = c.now()
		c.mu.Unlock()

		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(sts.Dataset), nil
}
