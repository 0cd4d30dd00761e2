// ABOUTME: MoodRecord is the one-per-day mood log entry
// ABOUTME: Moods are a fixed emoji set with stable names for CLI and MCP input
package models

import (
	"fmt"
	"strings"
)

// Mood is one of the fixed mood emojis
type Mood string

const (
	MoodGreat   Mood = "😄"
	MoodGood    Mood = "🙂"
	MoodOkay    Mood = "😐"
	MoodLow     Mood = "😔"
	MoodSad     Mood = "😢"
	MoodAnxious Mood = "😰"
	MoodAngry   Mood = "😠"
)

// Moods lists every valid mood in display order
var Moods = []Mood{MoodGreat, MoodGood, MoodOkay, MoodLow, MoodSad, MoodAnxious, MoodAngry}

var moodNames = map[Mood]string{
	MoodGreat:   "great",
	MoodGood:    "good",
	MoodOkay:    "okay",
	MoodLow:     "low",
	MoodSad:     "sad",
	MoodAnxious: "anxious",
	MoodAngry:   "angry",
}

// Name returns the stable lowercase name of the mood
func (m Mood) Name() string {
	return moodNames[m]
}

// Valid reports whether m is part of the fixed set
func (m Mood) Valid() bool {
	_, ok := moodNames[m]
	return ok
}

// ParseMood accepts either the emoji or its name (case-insensitive)
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if m := Mood(s); m.Valid() {
		return m, nil
	}
	lower := strings.ToLower(s)
	for m, name := range moodNames {
		if name == lower {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown mood %q", ErrInvalidRecord, s)
}

// MoodRecord is the mood logged for a single day
type MoodRecord struct {
	Date string `json:"date" yaml:"date"`
	Mood Mood   `json:"mood" yaml:"mood"`
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// NewMoodRecord creates a validated MoodRecord
func NewMoodRecord(date string, mood Mood, note string) (*MoodRecord, error) {
	r := &MoodRecord{Date: date, Mood: mood, Note: strings.TrimSpace(note)}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Key returns the record's date key
func (r MoodRecord) Key() string {
	return r.Date
}

// Validate checks the date key and mood
func (r MoodRecord) Validate() error {
	if err := ValidateDate(r.Date); err != nil {
		return err
	}
	if !r.Mood.Valid() {
		return fmt.Errorf("%w: unknown mood %q", ErrInvalidRecord, r.Mood)
	}
	return nil
}
