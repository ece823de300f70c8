package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := NewRedisStore(ctx, RedisOpts{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis 127.0.0.1:1")
}

func TestRedisStore_ErrorsDegradeToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 500 * time.Millisecond})
	store := NewRedisStoreWithClient(client, time.Minute)
	defer store.Close()

	ctx := context.Background()
	_, err := store.Get(ctx, "k")
	require.Error(t, err)
	require.Error(t, store.Set(ctx, "k", "v"))
	require.Error(t, store.Remove(ctx, "k"))

	_, ok := New(store).Get(ctx, "k")
	assert.False(t, ok, "unreachable redis reads as absent")
}
