// ABOUTME: Derived mood views computed from fresh reads, never persisted
// ABOUTME: Current streak, longest streak, and the seven-day trend
package storage

import (
	"context"
	"sort"
	"time"

	"github.com/harper/mindspace/internal/models"
)

// TrendDays is the length of the weekly trend window
const TrendDays = 7

// TrendDay is one slot of the weekly trend; Mood is nil when nothing was logged
type TrendDay struct {
	Date string       `json:"date" yaml:"date"`
	Mood *models.Mood `json:"mood" yaml:"mood"`
}

// MoodStats bundles the derived mood views for one instant
type MoodStats struct {
	Today         string              `json:"today"`
	Streak        int                 `json:"streak"`
	LongestStreak int                 `json:"longest_streak"`
	TotalDays     int                 `json:"total_days"`
	Week          []TrendDay          `json:"week"`
	WeekCounts    map[models.Mood]int `json:"week_counts"`
}

// Streak counts consecutive days with a mood, walking back from the day of
// now. Records are sorted newest first; the record at index i must fall
// exactly i days before today or the walk stops. No entry today means 0.
func Streak(records []models.MoodRecord, now time.Time) int {
	dates := make([]string, len(records))
	for i, r := range records {
		dates[i] = r.Date
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	streak := 0
	for i, d := range dates {
		if d != models.DaysBefore(now, i) {
			break
		}
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive logged days
func LongestStreak(records []models.MoodRecord, loc *time.Location) int {
	days := make([]time.Time, 0, len(records))
	for _, r := range records {
		d, err := models.ParseDate(r.Date, loc)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		switch {
		case i == 0:
			run = 1
		case d.Equal(days[i-1]):
			continue
		case d.Equal(days[i-1].AddDate(0, 0, 1)):
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// WeekDates returns the TrendDays date keys ending on the day of now, oldest first
func WeekDates(now time.Time) []string {
	dates := make([]string, TrendDays)
	for i := 0; i < TrendDays; i++ {
		dates[i] = models.DaysBefore(now, TrendDays-1-i)
	}
	return dates
}

// Streak returns the current mood streak ending today
func (s *Storage) Streak(ctx context.Context) (int, error) {
	all, err := s.Moods.GetAll(ctx)
	if err != nil {
		return 0, err
	}
	return Streak(all, s.clock.Now()), nil
}

// WeeklyTrend returns one slot per day for the last seven days, oldest first,
// using a point lookup per day
func (s *Storage) WeeklyTrend(ctx context.Context) ([]TrendDay, error) {
	return s.weeklyTrend(ctx, s.clock.Now())
}

func (s *Storage) weeklyTrend(ctx context.Context, now time.Time) ([]TrendDay, error) {
	week := make([]TrendDay, 0, TrendDays)
	for _, date := range WeekDates(now) {
		r, err := s.Moods.Get(ctx, date)
		if err != nil {
			return nil, err
		}
		day := TrendDay{Date: date}
		if r != nil {
			mood := r.Mood
			day.Mood = &mood
		}
		week = append(week, day)
	}
	return week, nil
}

// Stats computes every derived mood view against a single "now"
func (s *Storage) Stats(ctx context.Context) (*MoodStats, error) {
	now := s.clock.Now()

	all, err := s.Moods.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	week, err := s.weeklyTrend(ctx, now)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Mood]int)
	for _, d := range week {
		if d.Mood != nil {
			counts[*d.Mood]++
		}
	}

	return &MoodStats{
		Today:         models.FormatDate(now),
		Streak:        Streak(all, now),
		LongestStreak: LongestStreak(all, now.Location()),
		TotalDays:     len(all),
		Week:          week,
		WeekCounts:    counts,
	}, nil
}
