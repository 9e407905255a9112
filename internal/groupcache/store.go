// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package groupcache provides the byte-level key/value stores that persist
// scanned configuration groups and roots between generation runs.
//
// Stores know nothing about the payload; encoding and additive merging live
// with the caller. Three backends are provided:
//   - MemoryStore for single process use and tests
//   - FSStore, a directory-per-key map tolerant of concurrent writers
//   - SQLiteStore, a single database file shared by several namespaces
package groupcache

import (
	"context"
	"path/filepath"

	"grimm.is/cfgdoc/internal/errors"
)

// Store is a namespaced key/value store.
type Store interface {
	// Load returns the value for key and whether it exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	// Save stores value under key, replacing any previous value.
	Save(ctx context.Context, key string, value []byte) error
	// Keys lists stored keys in sorted order.
	Keys(ctx context.Context) ([]string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
)

// Open creates the store for backend. For the fs backend path is a base
// directory and namespace a subdirectory; for sqlite path is the database
// file and namespace a column value.
func Open(backend, path, namespace string) (Store, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFS:
		return NewFSStore(filepath.Join(path, namespace))
	case BackendSQLite:
		return OpenSQLite(path, namespace)
	default:
		return nil, errors.Errorf(errors.KindUnsupported, "unknown cache backend %q", backend)
	}
}

// Clear deletes every key of s.
func Clear(ctx context.Context, s Store) (int, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return 0, err
	}
	for _, k := range keys {
		if err := s.Delete(ctx, k); err != nil {
			return 0, errors.Attr(err, "key", k)
		}
	}
	return len(keys), nil
}
