package captcha

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_TakeConsumesRecord(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "id-1", "9", 5*time.Minute))

	answer, ok, err := store.Take(ctx, "id-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "9", answer)

	_, ok, err = store.Take(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_TakeUnknownID(t *testing.T) {
	store, _ := newRedisStore(t)

	_, ok, err := store.Take(context.Background(), "nunca-emitido")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_TakeExpired(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "id-1", "9", 5*time.Minute))

	mr.FastForward(5*time.Minute + time.Second)

	_, ok, err := store.Take(ctx, "id-1")
	require.NoError(t, err)
	assert.False(t, ok)
}
