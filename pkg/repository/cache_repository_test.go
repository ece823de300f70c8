package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1, MaxIdleConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

func TestCacheRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()
	require.NoError(t, repos.Ping(ctx))

	t.Run("missing key", func(t *testing.T) {
		v, err := repos.Cache.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("set, overwrite and get", func(t *testing.T) {
		require.NoError(t, repos.Cache.Set(ctx, "k1", `{"ts":1}`))
		require.NoError(t, repos.Cache.Set(ctx, "k1", `{"ts":2}`))
		v, err := repos.Cache.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, `{"ts":2}`, v)

		var count int
		require.NoError(t, repos.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM cache_entries WHERE key = 'k1'"))
		assert.Equal(t, 1, count)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, repos.Cache.Set(ctx, "k2", "v"))
		require.NoError(t, repos.Cache.Remove(ctx, "k2"))
		require.NoError(t, repos.Cache.Remove(ctx, "k2"), "removing absent key is fine")
		v, err := repos.Cache.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Empty(t, v)
	})

	t.Run("concurrent writes", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repos.Cache.Set(ctx, fmt.Sprintf("c%d", i%3), fmt.Sprintf("v%d", i)))
			}()
		}
		wg.Wait()
		var count int
		require.NoError(t, repos.DB.GetContext(ctx, &count, "SELECT COUNT(*) FROM cache_entries WHERE key LIKE 'c%'"))
		assert.Equal(t, 3, count)
	})

	t.Run("closed database fails without retry loop", func(t *testing.T) {
		other, err := NewRepositories(ctx, Config{DSN: ":memory:"})
		require.NoError(t, err)
		require.NoError(t, other.Close())
		err = other.Cache.Set(ctx, "k", "v")
		require.Error(t, err)
		var ce *criticalError
		assert.False(t, errors.As(err, &ce), "critical wrapper is stripped")
	})
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.True(t, isLockError(errors.New("SQLITE_BUSY: oops")))
	assert.True(t, isLockError(errors.New("database is locked")))
	assert.False(t, isLockError(errors.New("syntax error")))
}
