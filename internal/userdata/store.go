package userdata

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Store persists small JSON documents by key. Get returns ErrNotFound for a
// key that was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
	Close() error
}
