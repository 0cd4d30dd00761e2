// ABOUTME: Journal collection accessor with draft/final state handling
// ABOUTME: createdAt survives every update; lastModified strictly increases
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harper/mindspace/internal/models"
)

// Journals is the accessor for the journals collection
type Journals struct {
	*collection[models.JournalRecord]
	clock Clock
}

func newJournals(h *Handle, clock Clock) *Journals {
	return &Journals{
		collection: newCollection[models.JournalRecord](JournalsCollection, h),
		clock:      clock,
	}
}

// SaveDraft auto-saves content for date. Fails with ErrFinalized if the
// entry was already explicitly saved, even when content is empty. Otherwise
// empty content removes the entry.
func (j *Journals) SaveDraft(ctx context.Context, date, content string) (*models.JournalRecord, error) {
	return j.save(ctx, date, content, true)
}

// SaveFinal explicitly saves content for date. Empty content removes the entry.
func (j *Journals) SaveFinal(ctx context.Context, date, content string) (*models.JournalRecord, error) {
	return j.save(ctx, date, content, false)
}

func (j *Journals) save(ctx context.Context, date, content string, draft bool) (*models.JournalRecord, error) {
	var saved *models.JournalRecord
	err := j.update(ctx, date, func(prev *models.JournalRecord) (*models.JournalRecord, error) {
		if draft && prev != nil && !prev.Draft {
			return nil, fmt.Errorf("%w: %s", ErrFinalized, date)
		}
		if strings.TrimSpace(content) == "" {
			return nil, nil
		}

		now := j.clock.Now().UTC()
		next := &models.JournalRecord{
			Date:         date,
			Content:      content,
			Draft:        draft,
			LastModified: now,
			CreatedAt:    now,
		}
		if prev != nil {
			next.CreatedAt = prev.CreatedAt
			next.LastModified = after(prev.LastModified, now)
		}
		stored := next.UTC()
		saved = &stored
		return saved, nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// after returns now, or the smallest instant past prev if the clock has not moved
func after(prev, now time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}
