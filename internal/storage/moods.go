// ABOUTME: Mood collection accessor
// ABOUTME: One mood per day; logging again on the same day replaces it
package storage

import (
	"context"

	"github.com/harper/mindspace/internal/models"
)

// Moods is the accessor for the moods collection
type Moods struct {
	*collection[models.MoodRecord]
}

func newMoods(h *Handle) *Moods {
	return &Moods{newCollection[models.MoodRecord](MoodsCollection, h)}
}

// Log stores the mood for date and reports whether it created a new record
// (false means an existing one was replaced)
func (m *Moods) Log(ctx context.Context, date string, mood models.Mood, note string) (bool, error) {
	r, err := models.NewMoodRecord(date, mood, note)
	if err != nil {
		return false, err
	}

	created := false
	err = m.update(ctx, date, func(prev *models.MoodRecord) (*models.MoodRecord, error) {
		created = prev == nil
		return r, nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}
