package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
)

// CacheRepository keeps serialized cache entries in sqlite, one row per key
type CacheRepository struct {
	db *sqlx.DB
}

// NewCacheRepository creates a new cache repository
func NewCacheRepository(db *sqlx.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Get returns the stored value, empty string if the key is absent
func (r *CacheRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, "SELECT value FROM cache_entries WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get cache entry: %w", err)
	}
	return value, nil
}

// Set stores the value, replacing any previous one
func (r *CacheRepository) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO cache_entries (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	return r.exec(ctx, "set cache entry", query, key, value)
}

// Remove deletes the key, missing keys are not an error
func (r *CacheRepository) Remove(ctx context.Context, key string) error {
	return r.exec(ctx, "remove cache entry", "DELETE FROM cache_entries WHERE key = ?", key)
}

// exec runs a write statement, retrying on sqlite lock errors
func (r *CacheRepository) exec(ctx context.Context, op, query string, args ...any) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	err := retrier.Do(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("%s: %w", op, err)}
		}
		return nil
	}, errStopRetry)
	if err != nil {
		return unwrapCritical(err)
	}
	return nil
}
