// Package metadata is the local key/value store behind the persisted
// session: tokens, the cached user and the values handed between commands.
package metadata

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("metadata key not found")

// Entry is a stored value with its last write time.
type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context, prefix string) ([]Entry, error)
	Clear(ctx context.Context) error
}
