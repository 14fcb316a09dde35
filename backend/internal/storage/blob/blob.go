// Package blob holds the places a forum snapshot can live in. Every backend
// stores exactly one opaque document and overwrites it whole.
package blob

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("snapshot not found")

type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	// Ping reports whether the backend is reachable, used by readiness checks.
	Ping(ctx context.Context) error
	Close() error
}
