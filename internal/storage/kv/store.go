// ABOUTME: Badger key-value backend for the wellness store
// ABOUTME: Collections and records live under key prefixes in one embedded database
package kv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"sync"

	badger "github.com/dgraph-io/badger/v3"
)

// Key prefixes for the different entry types
const (
	CollectionPrefix = "collection:"
	RecordPrefix     = "record:"
	VersionKey       = "meta:version"
)

var collectionName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Store wraps an embedded badger database
type Store struct {
	// mu is held shared by every operation and exclusively by Close
	mu   sync.RWMutex
	db   *badger.DB
	path string
}

// Open opens or creates a badger database in the directory at path
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// OpenInMemory opens a badger database that lives only in memory (for testing)
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory badger: %w", err)
	}
	return &Store{db: db, path: ":memory:"}, nil
}

// Path returns the database directory
func (s *Store) Path() string {
	return s.path
}

// Close closes the database once in-flight operations finish
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// CollectionKey generates the registry key for a collection
func CollectionKey(name string) []byte {
	return []byte(CollectionPrefix + name)
}

// RecordKey generates the key for a record within a collection
func RecordKey(collection, key string) []byte {
	return []byte(RecordPrefix + collection + ":" + key)
}

// acquire returns the open database for one operation; call release when done
func (s *Store) acquire(ctx context.Context, collection string) (db *badger.DB, release func(), err error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if collection != "" && !collectionName.MatchString(collection) {
		return nil, nil, fmt.Errorf("invalid collection name %q", collection)
	}

	s.mu.RLock()
	if s.db == nil {
		s.mu.RUnlock()
		return nil, nil, errors.New("badger store is closed")
	}
	return s.db, s.mu.RUnlock, nil
}

// requireCollection fails inside txn if the collection was never created
func requireCollection(txn *badger.Txn, collection string) error {
	_, err := txn.Get(CollectionKey(collection))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("collection %s does not exist", collection)
	}
	return err
}

// Version returns the stored schema version, 0 for a new database
func (s *Store) Version(ctx context.Context) (int, error) {
	db, release, err := s.acquire(ctx, "")
	if err != nil {
		return 0, err
	}
	defer release()

	version := 0
	err = db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(VersionKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		version, err = strconv.Atoi(string(raw))
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// SetVersion stores the schema version
func (s *Store) SetVersion(ctx context.Context, version int) error {
	db, release, err := s.acquire(ctx, "")
	if err != nil {
		return err
	}
	defer release()
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(VersionKey), []byte(strconv.Itoa(version)))
	})
}

// HasCollection reports whether the collection was created
func (s *Store) HasCollection(ctx context.Context, name string) (bool, error) {
	db, release, err := s.acquire(ctx, name)
	if err != nil {
		return false, err
	}
	defer release()

	exists := false
	err = db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(CollectionKey(name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	})
	return exists, err
}

// CreateCollection registers the collection; existing collections are left alone
func (s *Store) CreateCollection(ctx context.Context, name string) error {
	db, release, err := s.acquire(ctx, name)
	if err != nil {
		return err
	}
	defer release()
	return db.Update(func(txn *badger.Txn) error {
		return txn.Set(CollectionKey(name), []byte{1})
	})
}

// Get returns the value stored under key
func (s *Store) Get(ctx context.Context, collection, key string) ([]byte, bool, error) {
	db, release, err := s.acquire(ctx, collection)
	if err != nil {
		return nil, false, err
	}
	defer release()

	var value []byte
	err = db.View(func(txn *badger.Txn) error {
		if err := requireCollection(txn, collection); err != nil {
			return err
		}
		item, err := txn.Get(RecordKey(collection, key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

// GetAll returns every value in the collection, ordered by key
func (s *Store) GetAll(ctx context.Context, collection string) ([][]byte, error) {
	db, release, err := s.acquire(ctx, collection)
	if err != nil {
		return nil, err
	}
	defer release()

	var values [][]byte
	err = db.View(func(txn *badger.Txn) error {
		if err := requireCollection(txn, collection); err != nil {
			return err
		}

		prefix := []byte(RecordPrefix + collection + ":")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			value, err := it.Item().ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		return nil
	})
	return values, err
}

// Put inserts or replaces the value stored under key
func (s *Store) Put(ctx context.Context, collection, key string, value []byte) error {
	db, release, err := s.acquire(ctx, collection)
	if err != nil {
		return err
	}
	defer release()
	return db.Update(func(txn *badger.Txn) error {
		if err := requireCollection(txn, collection); err != nil {
			return err
		}
		return txn.Set(RecordKey(collection, key), value)
	})
}

// Delete removes key from the collection; a missing key is not an error
func (s *Store) Delete(ctx context.Context, collection, key string) error {
	db, release, err := s.acquire(ctx, collection)
	if err != nil {
		return err
	}
	defer release()
	return db.Update(func(txn *badger.Txn) error {
		if err := requireCollection(txn, collection); err != nil {
			return err
		}
		return txn.Delete(RecordKey(collection, key))
	})
}
