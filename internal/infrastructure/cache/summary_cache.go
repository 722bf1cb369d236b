package cache

import (
	"context"
	"sync"
	"time"
)

// SummaryCache stores rendered dashboard summaries keyed by filter criteria.
type SummaryCache interface {
	// Get returns the cached payload for key, with false when absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores payload under key for ttl.
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	// Close releases any underlying resources.
	Close() error
}

type summaryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// defaultCleanupInterval paces the janitor. Summary TTLs are around a
// minute, so expired filter combinations never pile up for long.
const defaultCleanupInterval = time.Minute

// InMemorySummaryCache implements SummaryCache with a map. Suitable for
// single-instance deployments and testing. Keys derive from user-chosen
// filter combinations, so a janitor goroutine evicts expired entries to
// keep the map bounded.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[string]summaryEntry
	now     func() time.Time

	cleanupInterval time.Duration
	stopChan        chan struct{}
	wg              sync.WaitGroup
	closeOnce       sync.Once
}

// InMemorySummaryCacheOption is a functional option for configuration
type InMemorySummaryCacheOption func(*InMemorySummaryCache)

// WithSummaryClock overrides the time source, used by tests to control expiry
func WithSummaryClock(now func() time.Time) InMemorySummaryCacheOption {
	return func(c *InMemorySummaryCache) {
		c.now = now
	}
}

// WithSummaryCleanupInterval overrides how often the janitor runs
func WithSummaryCleanupInterval(interval time.Duration) InMemorySummaryCacheOption {
	return func(c *InMemorySummaryCache) {
		c.cleanupInterval = interval
	}
}

// NewInMemorySummaryCache creates an empty in-memory summary cache and
// starts the cleanup goroutine. Close stops it.
func NewInMemorySummaryCache(opts ...InMemorySummaryCacheOption) *InMemorySummaryCache {
	c := &InMemorySummaryCache{
		entries:         make(map[string]summaryEntry),
		now:             time.Now,
		cleanupInterval: defaultCleanupInterval,
		stopChan:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.wg.Add(1)
	go c.cleanupLoop()

	return c
}

// Get returns the cached payload for key
func (c *InMemorySummaryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(e.expiresAt) {
		return nil, false, nil
	}
	return e.payload, true, nil
}

// Set stores payload under key for ttl
func (c *InMemorySummaryCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = summaryEntry{payload: payload, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Close stops the cleanup goroutine and drops all entries.
// Safe to call multiple times.
func (c *InMemorySummaryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	c.mu.Lock()
	c.entries = make(map[string]summaryEntry)
	c.mu.Unlock()
	return nil
}

// Size returns the number of stored entries, expired ones included
func (c *InMemorySummaryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// cleanupLoop periodically removes expired entries
func (c *InMemorySummaryCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

// cleanup removes expired entries
func (c *InMemorySummaryCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}
