// Package kvstore is the durable key-value storage that survives restarts,
// the terminal counterpart of browser local storage.
package kvstore

import (
	"context"
	"fmt"

	"edura/internal/platform/config"
)

// Store persists string values by key. SetMany and Delete apply all keys or
// none.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetMany(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Open returns the store selected by cfg.Storage.
func Open(cfg config.Config) (Store, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		return NewSQLite(cfg.DBPath)
	case config.StorageFile:
		return NewFile(cfg.SessionPath), nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
