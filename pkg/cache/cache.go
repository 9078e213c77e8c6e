// Package cache stores stitched enumeration results between runs.
//
// Enumerating a board set is exhaustive and can take minutes, while the
// inputs rarely change. Results are keyed by a hash of the board contents
// and the options that shape the result, so editing any board file or
// changing the limit produces a fresh key.
//
// # Backends
//
//   - [FileCache]: JSON entries under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: caching disabled
//
// # Keys
//
// A [Keyer] builds keys; [ScopedKeyer] adds a prefix to isolate tenants
// or environments that share one backend.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit, or nil and false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKeyOpts holds the options that change an enumeration result.
type LayoutKeyOpts struct {
	EdgeLength int    `json:"edge"`
	Limit      int    `json:"limit"`
	Separator  string `json:"sep"`
	Divider    string `json:"div"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key for the stitched layouts of a board set.
	LayoutKey(boardsHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<boardsHash>:<hash(opts)>".
func (DefaultKeyer) LayoutKey(boardsHash string, opts LayoutKeyOpts) string {
	return hashKey(fmt.Sprintf("layout:%s", boardsHash), opts)
}
