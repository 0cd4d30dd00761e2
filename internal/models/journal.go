// ABOUTME: JournalRecord is the private journal entry for one day
// ABOUTME: Draft entries are auto-saved; final entries were explicitly saved
package models

import (
	"fmt"
	"strings"
	"time"
)

// JournalRecord is a journal entry keyed by date
type JournalRecord struct {
	Date         string    `json:"date" yaml:"date"`
	Content      string    `json:"content" yaml:"content"`
	Draft        bool      `json:"draft" yaml:"draft"`
	LastModified time.Time `json:"lastModified" yaml:"last_modified"`
	CreatedAt    time.Time `json:"createdAt" yaml:"created_at"`
}

// Key returns the record's date key
func (r JournalRecord) Key() string {
	return r.Date
}

// UTC returns r with its timestamps in UTC and stripped of monotonic readings
func (r JournalRecord) UTC() JournalRecord {
	r.LastModified = r.LastModified.UTC().Round(0)
	r.CreatedAt = r.CreatedAt.UTC().Round(0)
	return r
}

// Status is "draft" or "final"
func (r JournalRecord) Status() string {
	if r.Draft {
		return "draft"
	}
	return "final"
}

// Validate checks the date key, that content is present, and timestamp order
func (r JournalRecord) Validate() error {
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("%w: journal content cannot be empty", ErrInvalidRecord)
	}
	if r.LastModified.Before(r.CreatedAt) {
		return fmt.Errorf("%w: lastModified precedes createdAt", ErrInvalidRecord)
	}
	return nil
}
