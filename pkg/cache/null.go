package cache

import (
	"context"
	"time"
)

// NullCache is the page cache used when caching is off, which is the
// default: every lookup misses and nothing is written.
type NullCache struct{}

var _ Cache = (*NullCache)(nil)

// NewNullCache creates a NullCache.
func NewNullCache() Cache { return &NullCache{} }

// Get always misses.
func (*NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (*NullCache) Delete(context.Context, string) error {
	return nil
}

func (*NullCache) Close() error {
	return nil
}
