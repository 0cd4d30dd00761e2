// ABOUTME: Snapshot export and import for the wellness store
// ABOUTME: Supports YAML and JSON round trips plus a Markdown rendering
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/harper/mindspace/internal/models"
)

// Export formats
const (
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Snapshot is the complete exportable contents of a store
type Snapshot struct {
	ExportID      string                    `yaml:"export_id" json:"export_id"`
	Store         string                    `yaml:"store" json:"store"`
	SchemaVersion int                       `yaml:"schema_version" json:"schema_version"`
	ExportedAt    time.Time                 `yaml:"exported_at" json:"exported_at"`
	Moods         []models.MoodRecord       `yaml:"moods" json:"moods"`
	StressQuizzes []models.StressQuizRecord `yaml:"stress_quizzes" json:"stress_quizzes"`
	Journals      []models.JournalRecord    `yaml:"journals" json:"journals"`
}

// ImportResult counts the records written by Import
type ImportResult struct {
	Moods         int `json:"moods"`
	StressQuizzes int `json:"stress_quizzes"`
	Journals      int `json:"journals"`
}

// Export reads every collection into a snapshot, records sorted by date
func (s *Storage) Export(ctx context.Context) (*Snapshot, error) {
	moods, err := s.Moods.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export moods: %w", err)
	}
	quizzes, err := s.StressQuizzes.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export stress quizzes: %w", err)
	}
	journals, err := s.Journals.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to export journals: %w", err)
	}

	sort.Slice(moods, func(i, j int) bool { return moods[i].Date < moods[j].Date })
	sort.Slice(quizzes, func(i, j int) bool { return quizzes[i].Date < quizzes[j].Date })
	sort.Slice(journals, func(i, j int) bool { return journals[i].Date < journals[j].Date })

	return &Snapshot{
		ExportID:      uuid.New().String(),
		Store:         StoreName,
		SchemaVersion: SchemaVersion,
		ExportedAt:    s.clock.Now().UTC(),
		Moods:         moods,
		StressQuizzes: quizzes,
		Journals:      journals,
	}, nil
}

// Import upserts every record in snap. Records are validated before any is
// written, so an invalid snapshot changes nothing.
func (s *Storage) Import(ctx context.Context, snap *Snapshot) (*ImportResult, error) {
	if snap.Store != StoreName {
		return nil, fmt.Errorf("%w: snapshot is from store %q, not %q", ErrInvalidRecord, snap.Store, StoreName)
	}
	if snap.SchemaVersion > SchemaVersion {
		return nil, fmt.Errorf("%w: snapshot schema v%d is newer than supported v%d",
			ErrInvalidRecord, snap.SchemaVersion, SchemaVersion)
	}
	if err := snap.validate(); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, r := range snap.Moods {
		if err := s.Moods.Put(ctx, r); err != nil {
			return result, fmt.Errorf("failed to import mood %s: %w", r.Date, err)
		}
		result.Moods++
	}
	for _, r := range snap.StressQuizzes {
		if err := s.StressQuizzes.Put(ctx, r); err != nil {
			return result, fmt.Errorf("failed to import stress quiz %s: %w", r.Date, err)
		}
		result.StressQuizzes++
	}
	for _, r := range snap.Journals {
		if err := s.Journals.Put(ctx, r); err != nil {
			return result, fmt.Errorf("failed to import journal %s: %w", r.Date, err)
		}
		result.Journals++
	}
	return result, nil
}

func (snap *Snapshot) validate() error {
	for _, r := range snap.Moods {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("mood %s: %w", r.Date, err)
		}
	}
	for _, r := range snap.StressQuizzes {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("stress quiz %s: %w", r.Date, err)
		}
	}
	for _, r := range snap.Journals {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("journal %s: %w", r.Date, err)
		}
	}
	return nil
}

// WriteSnapshot encodes snap to w in the given format
func WriteSnapshot(w io.Writer, snap *Snapshot, format string) error {
	switch format {
	case FormatYAML, "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(snap); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatMarkdown:
		return writeMarkdown(w, snap)
	default:
		return fmt.Errorf("unknown export format %q (want yaml, json or markdown)", format)
	}
}

// WriteSnapshotFile writes snap to path, creating parent directories
func WriteSnapshotFile(path string, snap *Snapshot, format string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteSnapshot(file, snap, format); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadSnapshot decodes a JSON or YAML snapshot. JSON is detected by a
// leading '{'.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap Snapshot
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &snap); err != nil {
			return nil, fmt.Errorf("failed to decode JSON snapshot: %w", err)
		}
		return &snap, nil
	}
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode YAML snapshot: %w", err)
	}
	return &snap, nil
}

// ReadSnapshotFile reads a snapshot from path
func ReadSnapshotFile(path string) (*Snapshot, error) {
	file, err := os.Open(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer func() { _ = file.Close() }()
	return ReadSnapshot(file)
}

func writeMarkdown(w io.Writer, snap *Snapshot) error {
	var b bytes.Buffer

	fmt.Fprintf(&b, "# %s Export - %s\n\n", snap.Store, snap.ExportedAt.Format(models.DateLayout))
	fmt.Fprintf(&b, "Generated: %s\n\n", snap.ExportedAt.Format(time.RFC3339))

	if len(snap.Moods) > 0 {
		b.WriteString("## Moods\n\n")
		b.WriteString("| Date | Mood | Note |\n")
		b.WriteString("|------|------|------|\n")
		for _, r := range snap.Moods {
			fmt.Fprintf(&b, "| %s | %s %s | %s |\n", r.Date, r.Mood, r.Mood.Name(), r.Note)
		}
		b.WriteString("\n")
	}

	if len(snap.StressQuizzes) > 0 {
		b.WriteString("## Stress Quizzes\n\n")
		b.WriteString("| Date | Score | Level |\n")
		b.WriteString("|------|-------|-------|\n")
		for _, r := range snap.StressQuizzes {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", r.Date, r.Score, r.Level)
		}
		b.WriteString("\n")
	}

	if len(snap.Journals) > 0 {
		b.WriteString("## Journal\n\n")
		for _, r := range snap.Journals {
			fmt.Fprintf(&b, "### %s (%s)\n\n%s\n\n---\n\n", r.Date, r.Status(), r.Content)
		}
	}

	_, err := w.Write(b.Bytes())
	return err
}
