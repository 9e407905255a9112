// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package groupcache

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"grimm.is/cfgdoc/internal/errors"
)

const (
	valueFile = "value"

	// mkdirAttempts bounds the create-if-absent loop used when several
	// processes race to create the same directories.
	mkdirAttempts = 5
	mkdirBackoff  = 10 * time.Millisecond
)

// FSStore maps each key to <base>/<escaped key>/value. Writes go through a
// temporary file and a rename, so readers never see partial values and the
// last writer wins.
type FSStore struct {
	base string
}

// NewFSStore creates base if needed.
func NewFSStore(base string) (*FSStore, error) {
	if err := ensureDir(base); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// Dir returns the base directory.
func (s *FSStore) Dir() string { return s.base }

func (s *FSStore) keyDir(key string) string {
	return filepath.Join(s.base, url.PathEscape(key))
}

func (s *FSStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.keyDir(key), valueFile))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to read cache entry"), "key", key)
	}
	return data, true, nil
}

func (s *FSStore) Save(_ context.Context, key string, value []byte) error {
	dir := s.keyDir(key)
	if err := ensureDir(dir); err != nil {
		return errors.Attr(err, "key", key)
	}

	tmp, err := os.CreateTemp(dir, valueFile+".*.tmp")
	if err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to create temp file"), "key", key)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write cache entry"), "key", key)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write cache entry"), "key", key)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, valueFile)); err != nil {
		os.Remove(tmpName)
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to commit cache entry"), "key", key)
	}
	return nil
}

func (s *FSStore) Keys(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.KindInternal, "failed to list cache")
	}
	var keys []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(s.base, e.Name(), valueFile)); err != nil {
			continue
		}
		key, err := url.PathUnescape(e.Name())
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *FSStore) Delete(_ context.Context, key string) error {
	if err := os.RemoveAll(s.keyDir(key)); err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to delete cache entry"), "key", key)
	}
	return nil
}

func (s *FSStore) Close() error { return nil }

// ensureDir creates dir and its parents. A concurrent creator can make
// MkdirAll fail half way, so it is retried a bounded number of times while
// the directory is still missing.
func ensureDir(dir string) error {
	var err error
	for attempt := 0; attempt < mkdirAttempts; attempt++ {
		if err = os.MkdirAll(dir, 0o755); err == nil {
			return nil
		}
		if fi, statErr := os.Stat(dir); statErr == nil && fi.IsDir() {
			return nil
		}
		time.Sleep(mkdirBackoff * time.Duration(attempt+1))
	}
	return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to create cache directory"), "path", dir)
}
