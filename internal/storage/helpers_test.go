// ABOUTME: Shared fixtures for storage tests
// ABOUTME: Fixed clock plus in-memory stores for each backend
package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/harper/mindspace/internal/models"
	"github.com/harper/mindspace/internal/storage/kv"
	"github.com/harper/mindspace/internal/storage/sqlite"
)

var ctx = context.Background()

// fakeClock is a manually advanced clock
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// testNow is 2026-10-15 12:00 UTC
var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

var testBackends = map[string]Opener{
	BackendSQLite: func(ctx context.Context) (Backend, error) {
		return sqlite.OpenInMemory()
	},
	BackendBadger: func(ctx context.Context) (Backend, error) {
		return kv.OpenInMemory()
	},
}

// forEachBackend runs fn against a fresh store on every backend
func forEachBackend(t *testing.T, fn func(t *testing.T, s *Storage, clock *fakeClock)) {
	t.Helper()
	for name, open := range testBackends {
		t.Run(name, func(t *testing.T) {
			clock := newFakeClock(testNow)
			s := New(open, WithClock(clock))
			t.Cleanup(func() { _ = s.Close() })
			fn(t, s, clock)
		})
	}
}

// answersSumming builds ten answers whose values sum to score
func answersSumming(score int) map[int]int {
	answers := make(map[int]int, models.QuestionCount)
	remaining := score - models.MinScore
	for id := 1; id <= models.QuestionCount; id++ {
		extra := remaining
		if extra > models.MaxAnswer-models.MinAnswer {
			extra = models.MaxAnswer - models.MinAnswer
		}
		answers[id] = models.MinAnswer + extra
		remaining -= extra
	}
	return answers
}
