package store_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyhub/internal/party/models"
	"partyhub/internal/party/store"
	"partyhub/pkg/platform/circuit"
)

// unreachableRedis points at a port nothing listens on.
func unreachableRedis(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestCachedStoreFallsThroughWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	inner := store.NewInMemory(models.KindIndividual, store.NewIndividual)
	var logs bytes.Buffer
	cached := store.NewCached[*models.Individual](inner, unreachableRedis(t), models.KindIndividual, store.NewIndividual,
		store.WithCacheLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	ind := newIndividual(t, "Cache", "Miss", "cache@example.com", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, cached.Create(ctx, ind))

	for range circuit.DefaultFailureThreshold + 1 {
		got, err := cached.FindByID(ctx, ind.ID)
		require.NoError(t, err)
		assert.Equal(t, ind.ID, got.ID)
	}
	assert.Contains(t, logs.String(), "party cache disabled after repeated failures")

	updated, err := cached.Update(ctx, ind.ID, func(r *models.Individual) error {
		r.Title = "Dr"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr", updated.Title)
	require.NoError(t, cached.Delete(ctx, ind.ID))
}

// countingRedis counts the cache reads that reach the client.
type countingRedis struct {
	redis.Cmdable
	reads atomic.Int32
}

func (c *countingRedis) MGet(ctx context.Context, keys ...string) *redis.SliceCmd {
	c.reads.Add(1)
	return c.Cmdable.MGet(ctx, keys...)
}

func TestCachedStoreSkipsRedisWhileBreakerIsOpen(t *testing.T) {
	ctx := context.Background()
	inner := store.NewInMemory(models.KindIndividual, store.NewIndividual)
	ind := newIndividual(t, "Open", "Breaker", "open@example.com", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, inner.Create(ctx, ind))

	open := func(t *testing.T, probe time.Duration) (*store.CachedStore[*models.Individual], *countingRedis) {
		t.Helper()
		client := &countingRedis{Cmdable: unreachableRedis(t)}
		cached := store.NewCached[*models.Individual](inner, client, models.KindIndividual, store.NewIndividual,
			store.WithProbeInterval(probe),
			store.WithCacheLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		for range circuit.DefaultFailureThreshold {
			_, err := cached.FindByID(ctx, ind.ID)
			require.NoError(t, err)
		}
		require.Equal(t, int32(circuit.DefaultFailureThreshold), client.reads.Load())
		return cached, client
	}

	t.Run("reads go straight to the inner store", func(t *testing.T) {
		cached, client := open(t, time.Hour)
		for range 10 {
			got, err := cached.FindByID(ctx, ind.ID)
			require.NoError(t, err)
			assert.Equal(t, ind.ID, got.ID)
		}
		assert.Equal(t, int32(circuit.DefaultFailureThreshold), client.reads.Load())
	})

	t.Run("one read per probe interval tests redis", func(t *testing.T) {
		cached, client := open(t, 200*time.Millisecond)
		time.Sleep(250 * time.Millisecond)
		for range 3 {
			_, err := cached.FindByID(ctx, ind.ID)
			require.NoError(t, err)
		}
		assert.Equal(t, int32(circuit.DefaultFailureThreshold+1), client.reads.Load())
	})
}
