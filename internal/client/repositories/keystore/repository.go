// Package keystore persists opaque values under string keys in the client's
// SQLite database. It knows nothing about encryption; see securestore.
package keystore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

type Repository interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete succeeds when the key is absent.
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
