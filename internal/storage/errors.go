// ABOUTME: Error taxonomy for the wellness store
// ABOUTME: Unavailable is fatal for the process; IOError is recoverable per call
package storage

import (
	"errors"
	"fmt"

	"github.com/harper/mindspace/internal/models"
)

var (
	// ErrStorageUnavailable means persistence cannot be used in this process:
	// the backend is unsupported, the schema upgrade failed, or the store was closed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageIO matches any *IOError via errors.Is
	ErrStorageIO = errors.New("storage i/o error")

	// ErrInvalidRecord is returned before any I/O when input fails validation
	ErrInvalidRecord = models.ErrInvalidRecord

	// ErrFinalized is returned when an auto-save targets an explicitly saved entry
	ErrFinalized = errors.New("journal entry already finalized")
)

// IOError is a failed backend operation. The operation's effect was not applied.
type IOError struct {
	Op         string
	Collection string
	Key        string
	Err        error
}

func (e *IOError) Error() string {
	switch {
	case e.Collection == "":
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	case e.Key == "":
		return fmt.Sprintf("storage %s %s: %v", e.Op, e.Collection, e.Err)
	default:
		return fmt.Sprintf("storage %s %s/%s: %v", e.Op, e.Collection, e.Key, e.Err)
	}
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorageIO) match any IOError
func (e *IOError) Is(target error) bool {
	return target == ErrStorageIO
}

func ioError(op, collection, key string, err error) error {
	return &IOError{Op: op, Collection: collection, Key: key, Err: err}
}
