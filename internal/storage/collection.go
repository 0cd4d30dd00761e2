// ABOUTME: Generic date-keyed collection accessor over the shared handle
// ABOUTME: Writes hold an exclusive per-collection lock; reads share it
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/harper/mindspace/internal/models"
)

// record is what every collection stores
type record interface {
	Key() string
	Validate() error
}

// utcRecord is implemented by records carrying timestamps
type utcRecord[R any] interface {
	UTC() R
}

// collection implements get/getAll/put/delete for one record type
type collection[R record] struct {
	name   string
	handle *Handle
	mu     sync.RWMutex
}

func newCollection[R record](name string, h *Handle) *collection[R] {
	return &collection[R]{name: name, handle: h}
}

// Get returns the record for date, or nil if there is none
func (c *collection[R]) Get(ctx context.Context, date string) (*R, error) {
	if err := models.ValidateDate(date); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.get(ctx, date)
}

func (c *collection[R]) get(ctx context.Context, date string) (*R, error) {
	b, err := c.handle.EnsureReady(ctx)
	if err != nil {
		return nil, err
	}

	data, found, err := b.Get(ctx, c.name, date)
	if err != nil {
		return nil, ioError("get", c.name, date, err)
	}
	if !found {
		return nil, nil
	}

	var r R
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, ioError("decode", c.name, date, err)
	}
	return &r, nil
}

// GetAll returns every record in the collection in no particular order
func (c *collection[R]) GetAll(ctx context.Context) ([]R, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	b, err := c.handle.EnsureReady(ctx)
	if err != nil {
		return nil, err
	}

	values, err := b.GetAll(ctx, c.name)
	if err != nil {
		return nil, ioError("scan", c.name, "", err)
	}

	records := make([]R, 0, len(values))
	for _, data := range values {
		var r R
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, ioError("decode", c.name, "", err)
		}
		records = append(records, r)
	}
	return records, nil
}

// Put inserts or replaces the record stored under its date.
// Timestamps are stored in UTC, so Get returns them in UTC.
func (c *collection[R]) Put(ctx context.Context, r R) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(ctx, r)
}

func (c *collection[R]) put(ctx context.Context, r R) error {
	if u, ok := any(r).(utcRecord[R]); ok {
		r = u.UTC()
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", c.name, r.Key(), err)
	}

	b, err := c.handle.EnsureReady(ctx)
	if err != nil {
		return err
	}
	if err := b.Put(ctx, c.name, r.Key(), data); err != nil {
		return ioError("put", c.name, r.Key(), err)
	}
	return nil
}

// Delete removes the record for date; a missing record is not an error
func (c *collection[R]) Delete(ctx context.Context, date string) error {
	if err := models.ValidateDate(date); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delete(ctx, date)
}

func (c *collection[R]) delete(ctx context.Context, date string) error {
	b, err := c.handle.EnsureReady(ctx)
	if err != nil {
		return err
	}
	if err := b.Delete(ctx, c.name, date); err != nil {
		return ioError("delete", c.name, date, err)
	}
	return nil
}

// update runs fn on the current record for date inside the write lock.
// fn returns the record to store, or nil to delete.
func (c *collection[R]) update(ctx context.Context, date string, fn func(prev *R) (*R, error)) error {
	if err := models.ValidateDate(date); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, err := c.get(ctx, date)
	if err != nil {
		return err
	}
	next, err := fn(prev)
	if err != nil {
		return err
	}
	if next == nil {
		if prev == nil {
			return nil
		}
		return c.delete(ctx, date)
	}
	if (*next).Key() != date {
		return fmt.Errorf("%w: record date %q does not match key %q", ErrInvalidRecord, (*next).Key(), date)
	}
	if err := (*next).Validate(); err != nil {
		return err
	}
	return c.put(ctx, *next)
}
