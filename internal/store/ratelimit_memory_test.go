package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thdgm/urlshortener/internal/store"
)

func TestRateLimitMemoryStore_Record(t *testing.T) {
	t.Run("counts requests within the window", func(t *testing.T) {
		limitStore := store.NewRateLimitMemoryStore()

		for want := int64(1); want <= 3; want++ {
			count, err := limitStore.Record(context.Background(), "client", time.Minute)

			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("tracks keys independently", func(t *testing.T) {
		limitStore := store.NewRateLimitMemoryStore()

		_, _ = limitStore.Record(context.Background(), "a", time.Minute)
		_, _ = limitStore.Record(context.Background(), "a", time.Minute)
		count, err := limitStore.Record(context.Background(), "b", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("prunes entries outside the window", func(t *testing.T) {
		limitStore := store.NewRateLimitMemoryStore()

		_, _ = limitStore.Record(context.Background(), "client", 10*time.Millisecond)
		_, _ = limitStore.Record(context.Background(), "client", 10*time.Millisecond)

		time.Sleep(20 * time.Millisecond)

		count, err := limitStore.Record(context.Background(), "client", 10*time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
