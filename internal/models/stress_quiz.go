// ABOUTME: StressQuizRecord holds one completed stress self-assessment
// ABOUTME: Score is the sum of ten 1-5 answers; level is a fixed banding of the score
package models

import (
	"fmt"
	"time"
)

// StressLevel is the category derived from a quiz score
type StressLevel string

const (
	StressLow      StressLevel = "Low"
	StressModerate StressLevel = "Moderate"
	StressHigh     StressLevel = "High"
)

const (
	// QuestionCount is the number of questions in the quiz, ids 1..QuestionCount
	QuestionCount = 10
	MinAnswer     = 1
	MaxAnswer     = 5

	MinScore = QuestionCount * MinAnswer
	MaxScore = QuestionCount * MaxAnswer
)

// LevelForScore bands a score: Low <= 25, Moderate 26-40, High 41+
func LevelForScore(score int) StressLevel {
	switch {
	case score <= 25:
		return StressLow
	case score <= 40:
		return StressModerate
	default:
		return StressHigh
	}
}

// StressQuizRecord is a completed quiz for one day
type StressQuizRecord struct {
	Date      string      `json:"date" yaml:"date"`
	Score     int         `json:"score" yaml:"score"`
	Level     StressLevel `json:"level" yaml:"level"`
	Answers   map[int]int `json:"answers" yaml:"answers"`
	Timestamp time.Time   `json:"timestamp" yaml:"timestamp"`
}

// NewStressQuizRecord scores the answers and builds a validated record
func NewStressQuizRecord(date string, answers map[int]int, completedAt time.Time) (*StressQuizRecord, error) {
	copied := make(map[int]int, len(answers))
	score := 0
	for id, v := range answers {
		copied[id] = v
		score += v
	}
	r := &StressQuizRecord{
		Date:      date,
		Score:     score,
		Level:     LevelForScore(score),
		Answers:   copied,
		Timestamp: completedAt.UTC(),
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Key returns the record's date key
func (r StressQuizRecord) Key() string {
	return r.Date
}

// UTC returns r with its timestamp in UTC and stripped of a monotonic reading
func (r StressQuizRecord) UTC() StressQuizRecord {
	r.Timestamp = r.Timestamp.UTC().Round(0)
	return r
}

// Validate checks that every question is answered in range and that the
// stored score and level agree with the answers
func (r StressQuizRecord) Validate() error {
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if len(r.Answers) != QuestionCount {
		return fmt.Errorf("%w: expected %d answers, got %d", ErrInvalidRecord, QuestionCount, len(r.Answers))
	}
	sum := 0
	for id := 1; id <= QuestionCount; id++ {
		v, ok := r.Answers[id]
		if !ok {
			return fmt.Errorf("%w: question %d is unanswered", ErrInvalidRecord, id)
		}
		if v < MinAnswer || v > MaxAnswer {
			return fmt.Errorf("%w: answer to question %d must be %d-%d, got %d", ErrInvalidRecord, id, MinAnswer, MaxAnswer, v)
		}
		sum += v
	}
	if r.Score != sum {
		return fmt.Errorf("%w: score %d does not match answers (sum %d)", ErrInvalidRecord, r.Score, sum)
	}
	if want := LevelForScore(sum); r.Level != want {
		return fmt.Errorf("%w: level %q does not match score %d (want %q)", ErrInvalidRecord, r.Level, sum, want)
	}
	return nil
}
