// ABOUTME: Collection operations for the SQLite backend
// ABOUTME: Implements versioning, collection creation, and get/getAll/put/delete
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Version returns the highest applied schema version, 0 for a new database
func (db *DB) Version(ctx context.Context) (int, error) {
	var version int
	err := db.conn.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion records version as applied
func (db *DB) SetVersion(ctx context.Context, version int) error {
	_, err := db.conn.ExecContext(ctx, "INSERT OR IGNORE INTO schema_version (version) VALUES (?)", version)
	if err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

// HasCollection reports whether the collection table exists
func (db *DB) HasCollection(ctx context.Context, name string) (bool, error) {
	var found string
	err := db.conn.QueryRowContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up collection %s: %w", name, err)
	}
	return true, nil
}

// CreateCollection creates the collection table if it does not exist
func (db *DB) CreateCollection(ctx context.Context, name string) error {
	table, err := tableName(name)
	if err != nil {
		return err
	}
	if _, err := db.conn.ExecContext(ctx, fmt.Sprintf(collectionTable, table)); err != nil {
		return fmt.Errorf("failed to create collection %s: %w", name, err)
	}
	return nil
}

// Get returns the value stored under key
func (db *DB) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	table, err := tableName(collection)
	if err != nil {
		return nil, false, err
	}

	var value string
	err = db.conn.QueryRowContext(ctx, "SELECT value FROM "+table+" WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(value), true, nil
}

// GetAll returns every value in the collection
func (db *DB) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	table, err := tableName(collection)
	if err != nil {
		return nil, err
	}

	rows, err := db.conn.QueryContext(ctx, "SELECT value FROM "+table+" ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var values [][]byte
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		values = append(values, []byte(value))
	}
	return values, rows.Err()
}

// Put inserts or replaces the value stored under key
func (db *DB) Put(ctx context.Context, collection, key string, value []byte) error {
	table, err := tableName(collection)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO `+table+` (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, string(value))
	return err
}

// Delete removes key from the collection; a missing key is not an error
func (db *DB) Delete(ctx context.Context, collection, key string) error {
	table, err := tableName(collection)
	if err != nil {
		return err
	}

	_, err = db.conn.ExecContext(ctx, "DELETE FROM "+table+" WHERE key = ?", key)
	return err
}
