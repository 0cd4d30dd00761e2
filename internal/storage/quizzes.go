// ABOUTME: Stress quiz collection accessor
// ABOUTME: Results are immutable apart from a full overwrite when the quiz is retaken
package storage

import (
	"context"
	"time"

	"github.com/harper/mindspace/internal/models"
)

// StressQuizzes is the accessor for the stressQuizzes collection
type StressQuizzes struct {
	c *collection[models.StressQuizRecord]
}

func newStressQuizzes(h *Handle) *StressQuizzes {
	return &StressQuizzes{c: newCollection[models.StressQuizRecord](StressQuizzesCollection, h)}
}

// Get returns the quiz taken on date, or nil
func (q *StressQuizzes) Get(ctx context.Context, date string) (*models.StressQuizRecord, error) {
	return q.c.Get(ctx, date)
}

// GetAll returns every quiz result, unordered
func (q *StressQuizzes) GetAll(ctx context.Context) ([]models.StressQuizRecord, error) {
	return q.c.GetAll(ctx)
}

// Put stores a quiz result, replacing any earlier result for the same date
func (q *StressQuizzes) Put(ctx context.Context, r models.StressQuizRecord) error {
	return q.c.Put(ctx, r)
}

// Record scores answers, stamps completedAt and stores the result
func (q *StressQuizzes) Record(ctx context.Context, date string, answers map[int]int, completedAt time.Time) (*models.StressQuizRecord, error) {
	r, err := models.NewStressQuizRecord(date, answers, completedAt)
	if err != nil {
		return nil, err
	}
	if err := q.c.Put(ctx, *r); err != nil {
		return nil, err
	}
	stored := r.UTC()
	return &stored, nil
}

// Latest returns the most recent quiz by date, or nil if none were taken
func (q *StressQuizzes) Latest(ctx context.Context) (*models.StressQuizRecord, error) {
	all, err := q.c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var latest *models.StressQuizRecord
	for i := range all {
		if latest == nil || all[i].Date > latest.Date {
			latest = &all[i]
		}
	}
	return latest, nil
}
