package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bapenda-jatim/sts-monitoring/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySummaryCacheSetGet(t *testing.T) {
	c := NewInMemorySummaryCache()
	ctx := context.Background()

	payload, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, payload)

	require.NoError(t, c.Set(ctx, "k1", []byte(`{"total":600}`), time.Minute))

	payload, ok, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"total":600}`, string(payload))
}

func TestInMemorySummaryCacheExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewInMemorySummaryCache(WithSummaryClock(clock.Now))
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", []byte("x"), time.Minute))

	clock.Advance(30 * time.Second)
	_, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	clock.Advance(31 * time.Second)
	_, ok, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemorySummaryCacheEvictsExpiredEntries(t *testing.T) {
	clock := newFakeClock()
	c := NewInMemorySummaryCache(WithSummaryClock(clock.Now))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "stale", []byte("x"), time.Second))
	require.NoError(t, c.Set(ctx, "fresh", []byte("y"), 2*time.Hour))

	clock.Advance(time.Hour)
	_, ok, err := c.Get(ctx, "stale")
	require.NoError(t, err)
	require.False(t, ok)

	c.cleanup()

	assert.Equal(t, 1, c.Size())
	_, ok, err = c.Get(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemorySummaryCacheCleanupLoop(t *testing.T) {
	c := NewInMemorySummaryCache(WithSummaryCleanupInterval(10 * time.Millisecond))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", []byte("x"), time.Millisecond))

	assert.Eventually(t, func() bool {
		return c.Size() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestInMemorySummaryCacheClose(t *testing.T) {
	c := NewInMemorySummaryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", []byte("x"), time.Minute))
	require.NoError(t, c.Close())

	_, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Closing again must not panic or block.
	require.NoError(t, c.Close())
}

func TestSummaryCacheFactoryInMemory(t *testing.T) {
	f := NewSummaryCacheFactory(config.RedisConfig{Host: "localhost", Port: 6379})

	c := f.CreateInMemoryCache()
	require.NotNil(t, c)
	assert.NoError(t, c.Close())
}
