// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package groupcache

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"grimm.is/cfgdoc/internal/errors"
)

// SQLiteStore keeps entries of one namespace in a shared SQLite database.
type SQLiteStore struct {
	db        *sql.DB
	namespace string
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path, namespace string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to open cache db"), "path", path)
	}

	s := &SQLiteStore{db: db, namespace: namespace}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, errors.Attr(err, "path", path)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		namespace TEXT NOT NULL,
		key TEXT NOT NULL,
		value BLOB NOT NULL,
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
		PRIMARY KEY (namespace, key)
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return errors.Wrap(err, errors.KindInternal, "failed to create cache schema")
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM entries WHERE namespace = ? AND key = ?`, s.namespace, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to read cache entry"), "key", key)
	}
	return value, true, nil
}

// Save upserts the entry.
func (s *SQLiteStore) Save(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (namespace, key, value, updated_at)
		VALUES (?, ?, ?, strftime('%s','now'))
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, s.namespace, key, value)
	if err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to write cache entry"), "key", key)
	}
	return nil
}

func (s *SQLiteStore) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM entries WHERE namespace = ? ORDER BY key ASC`, s.namespace)
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to list cache")
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, errors.KindInternal, "failed to list cache")
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE namespace = ? AND key = ?`, s.namespace, key)
	if err != nil {
		return errors.Attr(errors.Wrap(err, errors.KindInternal, "failed to delete cache entry"), "key", key)
	}
	return nil
}
