// ABOUTME: Shared, lazily opened connection to the persistence backend
// ABOUTME: Concurrent first callers share a single open and schema upgrade
package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Handle owns the one backend connection used by every accessor
type Handle struct {
	open  Opener
	group singleflight.Group

	mu      sync.RWMutex
	backend Backend
	// fatal is set once persistence is unusable for the rest of the process
	fatal error
}

// NewHandle creates a handle that opens lazily with open
func NewHandle(open Opener) *Handle {
	return &Handle{open: open}
}

// EnsureReady returns the backend once it is open and at SchemaVersion.
// Repeated calls after success return the same backend without I/O.
func (h *Handle) EnsureReady(ctx context.Context) (Backend, error) {
	if b, err := h.state(); b != nil || err != nil {
		return b, err
	}

	// One caller's cancellation must not fail the callers sharing this open
	v, err, _ := h.group.Do("open", func() (interface{}, error) {
		return h.initialize(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(Backend), nil
}

func (h *Handle) state() (Backend, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.fatal != nil {
		return nil, h.fatal
	}
	return h.backend, nil
}

// initialize runs inside the singleflight group, so at most once at a time
func (h *Handle) initialize(ctx context.Context) (Backend, error) {
	// A previous flight may have finished between state() and Do
	if b, err := h.state(); b != nil || err != nil {
		return b, err
	}

	b, err := h.open(ctx)
	if err != nil {
		if errors.Is(err, ErrStorageUnavailable) {
			h.fail(err)
			return nil, err
		}
		return nil, ioError("open", "", "", err)
	}

	from, err := b.Version(ctx)
	if err != nil {
		_ = b.Close()
		return nil, ioError("open", "", "", fmt.Errorf("read schema version: %w", err))
	}

	created, err := Upgrade(ctx, b, from, SchemaVersion)
	if err != nil {
		_ = b.Close()
		fatal := fmt.Errorf("%w: schema upgrade v%d to v%d: %w", ErrStorageUnavailable, from, SchemaVersion, err)
		h.fail(fatal)
		return nil, fatal
	}
	if len(created) > 0 {
		log.Printf("storage: upgraded schema v%d to v%d, created %v", from, SchemaVersion, created)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fatal != nil {
		// closed while opening
		_ = b.Close()
		return nil, h.fatal
	}
	h.backend = b
	return b, nil
}

func (h *Handle) fail(err error) {
	h.mu.Lock()
	h.fatal = err
	h.mu.Unlock()
}

// Close releases the backend. Later calls to EnsureReady fail with
// ErrStorageUnavailable.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.fatal == nil {
		h.fatal = fmt.Errorf("%w: store closed", ErrStorageUnavailable)
	}
	if h.backend == nil {
		return nil
	}
	err := h.backend.Close()
	h.backend = nil
	return err
}
