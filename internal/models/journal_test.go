// ABOUTME: Tests for JournalRecord validation and status
// ABOUTME: Covers empty content, bad dates, and timestamp ordering
package models

import (
	"errors"
	"testing"
	"time"
)

func TestJournalRecord_Validate(t *testing.T) {
	created := time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		record  JournalRecord
		wantErr bool
	}{
		{"valid", JournalRecord{Date: "2026-10-15", Content: "hello", CreatedAt: created, LastModified: created}, false},
		{"edited later", JournalRecord{Date: "2026-10-15", Content: "hello", CreatedAt: created, LastModified: created.Add(time.Hour)}, false},
		{"blank content", JournalRecord{Date: "2026-10-15", Content: "  \n", CreatedAt: created, LastModified: created}, true},
		{"bad date", JournalRecord{Date: "2026-13-01", Content: "hello", CreatedAt: created, LastModified: created}, true},
		{"modified before created", JournalRecord{Date: "2026-10-15", Content: "hello", CreatedAt: created, LastModified: created.Add(-time.Second)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.record.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("Validate() error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestJournalRecord_Status(t *testing.T) {
	if got := (JournalRecord{Draft: true}).Status(); got != "draft" {
		t.Errorf("Status() = %q, want draft", got)
	}
	if got := (JournalRecord{}).Status(); got != "final" {
		t.Errorf("Status() = %q, want final", got)
	}
}
