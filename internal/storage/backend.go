// Package storage persists résumés, per-domain field mappings and settings
// in a key-value backend.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/jobfiller/internal/config"
)

// ErrNotFound is returned by a Backend when a key is absent.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a flat key-value store. Values are opaque bytes.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists keys starting with prefix in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

// Error wraps a backend failure with the operation and key involved.
type Error struct {
	Backend string
	Op      string
	Key     string
	Cause   error
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Backend, e.Op, e.Key, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Open connects to the backend named in cfg.
func Open(ctx context.Context, cfg config.Config) (Backend, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return NewMemoryBackend(), nil
	case config.StorageSQLite, "":
		path := cfg.SQLitePath
		if path == "" {
			path = config.DefaultSQLitePath()
		}
		return OpenSQLite(ctx, path)
	case config.StoragePostgres:
		return ConnectPostgres(ctx, cfg.DatabaseURL)
	case config.StorageRedis:
		return ConnectRedis(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
