package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"kwikquiz/internal/store"
)

// collection fronts one reserved store key holding a JSON array. Reads go
// through an in-memory cache filled once per process; writes persist first
// and only then refresh the cache, so a failed Set leaves both the store and
// the cache untouched.
type collection[T any] struct {
	store store.Store
	key   string
	sf    singleflight.Group

	mu     sync.RWMutex
	cached []T
	loaded bool
}

func newCollection[T any](st store.Store, key string) *collection[T] {
	return &collection[T]{store: st, key: key}
}

// load returns the cached items, reading the blob on first use. A missing
// key is an empty collection. The returned slice is shared; callers must not
// mutate it in place.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	c.mu.RLock()
	if c.loaded {
		items := c.cached
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(c.key, func() (interface{}, error) {
		c.mu.RLock()
		if c.loaded {
			items := c.cached
			c.mu.RUnlock()
			return items, nil
		}
		c.mu.RUnlock()

		raw, err := c.store.Get(ctx, c.key)
		if errors.Is(err, store.ErrKeyNotFound) {
			raw = "[]"
		} else if err != nil {
			return nil, fmt.Errorf("load %s: %w", c.key, err)
		}

		var items []T
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.key, err)
		}

		c.mu.Lock()
		c.cached = items
		c.loaded = true
		c.mu.Unlock()
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]T), nil
}

// save persists items and, on success, makes them the cached view.
func (c *collection[T]) save(ctx context.Context, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}

	c.mu.Lock()
	c.cached = items
	c.loaded = true
	c.mu.Unlock()
	return nil
}
