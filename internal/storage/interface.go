// Package storage is the persistent key-value port the reservation state is
// mirrored to. Values are opaque bytes, each Save overwrites the whole entry.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing has been stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Store defines the operations every storage adapter provides.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
