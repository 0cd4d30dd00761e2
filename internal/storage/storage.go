// ABOUTME: Storage facade that owns the handle and the collection accessors
// ABOUTME: Built once at startup and passed to every consumer
package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/harper/mindspace/internal/storage/kv"
	"github.com/harper/mindspace/internal/storage/sqlite"
)

// Supported backends
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Storage is the wellness store: one handle, three accessors
type Storage struct {
	handle *Handle
	clock  Clock

	Moods         *Moods
	StressQuizzes *StressQuizzes
	Journals      *Journals
}

// Option configures a Storage
type Option func(*Storage)

// WithClock replaces the system clock used for "today" and timestamps
func WithClock(c Clock) Option {
	return func(s *Storage) {
		s.clock = c
	}
}

// New creates a store that opens lazily with open on first use
func New(open Opener, opts ...Option) *Storage {
	s := &Storage{
		handle: NewHandle(open),
		clock:  SystemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Moods = newMoods(s.handle)
	s.StressQuizzes = newStressQuizzes(s.handle)
	s.Journals = newJournals(s.handle, s.clock)
	return s
}

// NewInMemory creates a store over an in-memory SQLite database (for testing)
func NewInMemory(opts ...Option) *Storage {
	return New(func(ctx context.Context) (Backend, error) {
		return sqlite.OpenInMemory()
	}, opts...)
}

// OpenerFor returns the opener for a named backend. An unknown backend yields
// an opener that fails with ErrStorageUnavailable.
func OpenerFor(backend, path string, busyTimeout time.Duration) Opener {
	switch backend {
	case BackendSQLite:
		return func(ctx context.Context) (Backend, error) {
			db, err := sqlite.Open(ctx, path, busyTimeout)
			if err != nil {
				return nil, err
			}
			log.Printf("storage: opened sqlite at %s", path)
			return db, nil
		}
	case BackendBadger:
		return func(ctx context.Context) (Backend, error) {
			db, err := kv.Open(path)
			if err != nil {
				return nil, err
			}
			log.Printf("storage: opened badger at %s", path)
			return db, nil
		}
	default:
		return func(ctx context.Context) (Backend, error) {
			return nil, fmt.Errorf("%w: unsupported backend %q", ErrStorageUnavailable, backend)
		}
	}
}

// Open eagerly opens the backend and applies schema upgrades
func (s *Storage) Open(ctx context.Context) error {
	_, err := s.handle.EnsureReady(ctx)
	return err
}

// Close releases the backend; the store cannot be used afterwards
func (s *Storage) Close() error {
	return s.handle.Close()
}

// Today returns the date key for the current day in the clock's time zone
func (s *Storage) Today() string {
	return today(s.clock)
}

// Now returns the current instant from the store's clock
func (s *Storage) Now() time.Time {
	return s.clock.Now()
}
