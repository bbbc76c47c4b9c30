package cache

import (
	"context"
	"errors"
)

// ErrNotFound means the match has not been cached yet and must be fetched.
var ErrNotFound = errors.New("match not cached")

// Store persists raw match records keyed by match instance id. Entries are
// never evicted or rewritten once stored.
type Store interface {
	// Get returns the record stored for matchID or ErrNotFound.
	Get(ctx context.Context, matchID string) ([]byte, error)

	// Put stores raw for matchID. The record is durable when Put returns.
	Put(ctx context.Context, matchID string, raw []byte) error
}
