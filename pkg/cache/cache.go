// Package cache stores fetched pages between runs.
//
// Three backends implement [Cache]:
//   - [NullCache]: stores nothing (the default)
//   - [FileCache]: JSON entries under a local directory
//   - [RedisCache]: a shared Redis instance
//
// Keys are produced by a [Keyer] so that several tools can share one
// backend without collisions:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "clickmap:")
//	key := keyer.PageKey("http://clickhole.com/article/1")
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// PageKey returns the key for the body of the page at url.
	PageKey(url string) string
}

// DefaultKeyer hashes page URLs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PageKey returns "page:<sha256(url)>".
func (DefaultKeyer) PageKey(url string) string {
	return "page:" + Hash([]byte(url))
}

// ScopedKeyer wraps a Keyer with a prefix, giving each tool sharing a
// backend its own namespace.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PageKey generates a prefixed page key.
func (k *ScopedKeyer) PageKey(url string) string {
	return k.prefix + k.inner.PageKey(url)
}
