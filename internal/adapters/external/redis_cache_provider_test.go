package external

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"newsdesk.app/internal/config"
	"newsdesk.app/pkg/errors"
)

func setupMockRedis(t *testing.T) (*miniredis.Miniredis, *config.RedisConfig) {
	t.Helper()

	mockRedis := miniredis.RunT(t)
	return mockRedis, &config.RedisConfig{
		Addr:         mockRedis.Addr(),
		DialTimeout:  5,
		ReadTimeout:  3,
		WriteTimeout: 3,
	}
}

func TestNewRedisCacheProviderAdapter(t *testing.T) {
	t.Run("NilConfig", func(t *testing.T) {
		adapter, err := NewRedisCacheProviderAdapter(nil)
		assert.Nil(t, adapter)
		assert.True(t, errors.IsConfigurationError(err))
	})

	t.Run("Unreachable", func(t *testing.T) {
		adapter, err := NewRedisCacheProviderAdapter(&config.RedisConfig{
			Addr:         "127.0.0.1:1",
			DialTimeout:  1,
			ReadTimeout:  1,
			WriteTimeout: 1,
		})
		assert.Nil(t, adapter)
		assert.Error(t, err)
	})

	t.Run("Valid", func(t *testing.T) {
		_, cfg := setupMockRedis(t)

		adapter, err := NewRedisCacheProviderAdapter(cfg)
		require.NoError(t, err)
		assert.NoError(t, adapter.Ping(context.Background()))
		assert.NoError(t, adapter.Close())
	})
}

func TestRedisCacheProviderAdapter_Operations(t *testing.T) {
	mockRedis, cfg := setupMockRedis(t)
	adapter, err := NewRedisCacheProviderAdapter(cfg)
	require.NoError(t, err)
	defer adapter.Close()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "stats:subscribers", []byte(`{"total":1}`), time.Minute))
	assert.True(t, mockRedis.Exists("newsdesk:stats:subscribers"))

	got, err := adapter.Get(ctx, "stats:subscribers")
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":1}`, string(got))

	exists, err := adapter.Exists(ctx, "stats:subscribers")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, adapter.Delete(ctx, "stats:subscribers"))
	_, err = adapter.Get(ctx, "stats:subscribers")
	assert.True(t, errors.IsNotFoundError(err))

	stats := adapter.GetStats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestRedisCacheProviderAdapter_TTL(t *testing.T) {
	mockRedis, cfg := setupMockRedis(t)
	adapter, err := NewRedisCacheProviderAdapter(cfg)
	require.NoError(t, err)
	defer adapter.Close()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "k", []byte("v"), 10*time.Second))
	mockRedis.FastForward(11 * time.Second)

	_, err = adapter.Get(ctx, "k")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestRedisCacheProviderAdapter_ClearKeepsForeignKeys(t *testing.T) {
	mockRedis, cfg := setupMockRedis(t)
	adapter, err := NewRedisCacheProviderAdapter(cfg)
	require.NoError(t, err)
	defer adapter.Close()
	ctx := context.Background()

	require.NoError(t, mockRedis.Set("other-service:key", "keep"))
	require.NoError(t, adapter.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, adapter.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, adapter.Clear(ctx))

	assert.False(t, mockRedis.Exists("newsdesk:a"))
	assert.False(t, mockRedis.Exists("newsdesk:b"))
	assert.True(t, mockRedis.Exists("other-service:key"))
}

func TestRedisCacheProviderAdapter_Validation(t *testing.T) {
	_, cfg := setupMockRedis(t)
	adapter, err := NewRedisCacheProviderAdapter(cfg)
	require.NoError(t, err)
	defer adapter.Close()
	ctx := context.Background()

	assert.True(t, errors.IsValidationError(adapter.Set(ctx, "", []byte("v"), time.Second)))
	assert.True(t, errors.IsValidationError(adapter.Set(ctx, "k", []byte("v"), 0)))
	_, err = adapter.Get(ctx, "")
	assert.True(t, errors.IsValidationError(err))
}
