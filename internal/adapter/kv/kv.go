// Package kv defines the local key-value persistence substrate the profile
// store writes through, with in-memory, file, redis, and sqlite backends.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when the key has never been set or has
// been deleted.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence substrate: string values addressed by string
// keys. Set overwrites. Delete is idempotent; deleting a missing key is not
// an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
