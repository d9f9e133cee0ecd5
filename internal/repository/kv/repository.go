// Package kv provides the durable key-value slot the cart store persists
// into. The storage mechanism is opaque to callers: one key, one JSON value.
package kv

import (
	"context"
)

type Repository interface {
	// Get returns the raw value stored under key, or domain.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
}
