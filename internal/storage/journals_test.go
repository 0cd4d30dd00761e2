// ABOUTME: Tests for journal draft and final handling on every backend
// ABOUTME: createdAt is kept across saves and lastModified always moves forward
package storage

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/harper/mindspace/internal/models"
)

func TestJournals_DraftThenFinal(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storage, clock *fakeClock) {
		draft, err := s.Journals.SaveDraft(ctx, "2026-10-15", "Dear diary")
		if err != nil {
			t.Fatalf("SaveDraft() error = %v", err)
		}
		if !draft.Draft {
			t.Error("SaveDraft() should store a draft")
		}
		if !draft.CreatedAt.Equal(draft.LastModified) {
			t.Errorf("new entry createdAt %v != lastModified %v", draft.CreatedAt, draft.LastModified)
		}

		clock.Advance(time.Minute)
		final, err := s.Journals.SaveFinal(ctx, "2026-10-15", "Dear diary, today was fine.")
		if err != nil {
			t.Fatalf("SaveFinal() error = %v", err)
		}

		got, err := s.Journals.Get(ctx, "2026-10-15")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got == nil {
			t.Fatal("Get() = nil after SaveFinal")
		}
		if got.Draft {
			t.Error("entry should be final after SaveFinal")
		}
		if got.Content != "Dear diary, today was fine." {
			t.Errorf("Content = %q", got.Content)
		}
		if !got.CreatedAt.Equal(draft.CreatedAt) {
			t.Errorf("CreatedAt = %v, want preserved %v", got.CreatedAt, draft.CreatedAt)
		}
		if !got.LastModified.After(draft.LastModified) {
			t.Errorf("LastModified %v should be after %v", got.LastModified, draft.LastModified)
		}
		if !got.LastModified.Equal(final.LastModified) {
			t.Errorf("stored LastModified %v != returned %v", got.LastModified, final.LastModified)
		}
	})
}

func TestJournals_LastModifiedIncreasesWithFrozenClock(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storage, _ *fakeClock) {
		var prev time.Time
		for i, content := range []string{"a", "ab", "abc", "abcd"} {
			r, err := s.Journals.SaveDraft(ctx, "2026-10-15", content)
			if err != nil {
				t.Fatalf("SaveDraft() #%d error = %v", i+1, err)
			}
			if i > 0 && !r.LastModified.After(prev) {
				t.Errorf("save #%d LastModified %v not after %v", i+1, r.LastModified, prev)
			}
			prev = r.LastModified
		}
	})
}

func TestJournals_DraftCannotReplaceFinal(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storage, _ *fakeClock) {
		if _, err := s.Journals.SaveFinal(ctx, "2026-10-15", "Finished thoughts"); err != nil {
			t.Fatalf("SaveFinal() error = %v", err)
		}

		if _, err := s.Journals.SaveDraft(ctx, "2026-10-15", "late autosave"); !errors.Is(err, ErrFinalized) {
			t.Fatalf("SaveDraft() over final error = %v, want ErrFinalized", err)
		}

		got, err := s.Journals.Get(ctx, "2026-10-15")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Content != "Finished thoughts" || got.Draft {
			t.Errorf("final entry changed: %+v", got)
		}

		// A cleared editor auto-saving must not remove the final entry
		if _, err := s.Journals.SaveDraft(ctx, "2026-10-15", ""); !errors.Is(err, ErrFinalized) {
			t.Fatalf("SaveDraft() empty over final error = %v, want ErrFinalized", err)
		}
		got, err = s.Journals.Get(ctx, "2026-10-15")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got == nil || got.Content != "Finished thoughts" {
			t.Errorf("final entry after empty draft = %+v, want it kept", got)
		}

		// Explicit saves may still edit a final entry
		if _, err := s.Journals.SaveFinal(ctx, "2026-10-15", "Edited thoughts"); err != nil {
			t.Errorf("SaveFinal() over final error = %v", err)
		}

		// and an explicit empty save removes it
		if _, err := s.Journals.SaveFinal(ctx, "2026-10-15", ""); err != nil {
			t.Fatalf("SaveFinal() empty error = %v", err)
		}
		if got, _ := s.Journals.Get(ctx, "2026-10-15"); got != nil {
			t.Errorf("Get() after empty SaveFinal = %+v, want nil", got)
		}
	})
}

func TestJournals_EmptyContentDeletes(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storage, _ *fakeClock) {
		if _, err := s.Journals.SaveDraft(ctx, "2026-10-15", "something"); err != nil {
			t.Fatalf("SaveDraft() error = %v", err)
		}

		r, err := s.Journals.SaveDraft(ctx, "2026-10-15", "   \n")
		if err != nil {
			t.Fatalf("SaveDraft() empty error = %v", err)
		}
		if r != nil {
			t.Errorf("SaveDraft() empty = %+v, want nil", r)
		}

		got, err := s.Journals.Get(ctx, "2026-10-15")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != nil {
			t.Errorf("Get() = %+v, want nil after clearing content", got)
		}
	})
}

func TestJournals_RecreateGetsNewCreatedAt(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storage, clock *fakeClock) {
		first, err := s.Journals.SaveFinal(ctx, "2026-10-15", "first take")
		if err != nil {
			t.Fatalf("SaveFinal() error = %v", err)
		}
		if err := s.Journals.Delete(ctx, "2026-10-15"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		clock.Advance(time.Hour)
		second, err := s.Journals.SaveDraft(ctx, "2026-10-15", "second take")
		if err != nil {
			t.Fatalf("SaveDraft() after delete error = %v", err)
		}
		if !second.CreatedAt.After(first.CreatedAt) {
			t.Errorf("recreated CreatedAt %v should be after %v", second.CreatedAt, first.CreatedAt)
		}
		if !second.Draft {
			t.Error("recreated entry should be a draft")
		}
	})
}

func TestJournals_TimesStoredInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	clock := newFakeClock(time.Date(2026, 10, 15, 23, 30, 0, 0, loc))
	s := NewInMemory(WithClock(clock))
	defer func() { _ = s.Close() }()

	if got := s.Today(); got != "2026-10-15" {
		t.Errorf("Today() = %s, want the local day 2026-10-15", got)
	}

	r, err := s.Journals.SaveFinal(ctx, s.Today(), "late night")
	if err != nil {
		t.Fatalf("SaveFinal() error = %v", err)
	}
	if r.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", r.CreatedAt.Location())
	}
}

func TestJournals_PutRoundTripsZonedTimes(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *Storage, _ *fakeClock) {
		zone := time.FixedZone("UTC+2", 2*60*60)
		r := models.JournalRecord{
			Date:         "2026-10-15",
			Content:      "written abroad",
			Draft:        true,
			CreatedAt:    time.Date(2026, 10, 15, 9, 0, 0, 0, zone),
			LastModified: time.Date(2026, 10, 15, 21, 30, 0, 500, zone),
		}
		if err := s.Journals.Put(ctx, r); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, err := s.Journals.Get(ctx, r.Date)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got == nil {
			t.Fatal("Get() = nil, want the stored entry")
		}
		if !reflect.DeepEqual(*got, r.UTC()) {
			t.Errorf("Get() = %+v, want %+v", *got, r.UTC())
		}
		if !got.CreatedAt.Equal(r.CreatedAt) || !got.LastModified.Equal(r.LastModified) {
			t.Errorf("Get() times = %v/%v, want instants %v/%v", got.CreatedAt, got.LastModified, r.CreatedAt, r.LastModified)
		}
		if got.CreatedAt.Location() != time.UTC {
			t.Errorf("CreatedAt location = %v, want UTC", got.CreatedAt.Location())
		}
	})
}
