// ABOUTME: Contract every persistence backend implements
// ABOUTME: Named collections of JSON values keyed by a single string key
package storage

import "context"

// Backend is a persistence engine with named collections.
//
// Operations on a collection that does not exist must fail. Get reports a
// missing key with found == false and a nil error.
type Backend interface {
	Version(ctx context.Context) (int, error)
	SetVersion(ctx context.Context, version int) error

	HasCollection(ctx context.Context, name string) (bool, error)
	CreateCollection(ctx context.Context, name string) error

	Get(ctx context.Context, collection, key string) (value []byte, found bool, err error)
	GetAll(ctx context.Context, collection string) ([][]byte, error)
	Put(ctx context.Context, collection, key string, value []byte) error
	Delete(ctx context.Context, collection, key string) error

	Close() error
}

// Opener opens a backend. Returning an error that wraps ErrStorageUnavailable
// marks persistence as unsupported for the rest of the process.
type Opener func(ctx context.Context) (Backend, error)
