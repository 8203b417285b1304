// Package cache provides the fetch-or-compute contract used around the
// expensive read paths.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is a byte-level key/value backend. Get reports false on a miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Fetch returns the cached value for key, or computes, stores and returns it.
// Store errors never fail the call; the value is computed instead.
func Fetch[T any](ctx context.Context, store Store, key string, compute func(context.Context) (T, error)) (T, error) {
	if raw, ok, err := store.Get(ctx, key); err == nil && ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
	}

	v, err := compute(ctx)
	if err != nil {
		return v, err
	}
	if raw, err := json.Marshal(v); err == nil {
		_ = store.Set(ctx, key, raw)
	}
	return v, nil
}

// Nop never hits.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Nop) Set(context.Context, string, []byte) error { return nil }

// Key joins parts into a namespaced cache key.
func Key(namespace string, parts ...any) string {
	key := namespace
	for _, p := range parts {
		key += fmt.Sprintf(":%v", p)
	}
	return key
}
