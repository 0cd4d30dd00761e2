// ABOUTME: End-to-end tests running CLI commands against a temporary store
// ABOUTME: Each test gets its own database via MINDSPACE_DB_PATH

package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/mindspace/internal/models"
	"github.com/harper/mindspace/internal/storage"
)

// setupStore points the CLI at a fresh database and an empty working directory
func setupStore(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mindspace.db")
	if backend == storage.BackendBadger {
		path = filepath.Join(dir, "badger")
	}

	t.Setenv("MINDSPACE_BACKEND", backend)
	t.Setenv("MINDSPACE_DB_PATH", path)
	t.Setenv("MINDSPACE_TIMEZONE", "UTC")
	t.Setenv("XDG_DATA_HOME", dir)
	t.Chdir(t.TempDir())
	return path
}

// runCLI executes the root command with args and returns combined output
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return output.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := runCLI(t, "", args...)
	if err != nil {
		t.Fatalf("%v error = %v\noutput: %s", args, err, out)
	}
	return out
}

func TestMoodCommands(t *testing.T) {
	for _, backend := range []string{storage.BackendSQLite, storage.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			setupStore(t, backend)

			out := mustRun(t, "mood", "log", "good", "--date", "2026-10-14", "--note", "walked")
			if !strings.Contains(out, "✓ Logged 🙂 good for 2026-10-14") {
				t.Errorf("mood log output = %q", out)
			}

			out = mustRun(t, "mood", "log", "😢", "--date", "2026-10-14")
			if !strings.Contains(out, "✓ Updated 😢 sad for 2026-10-14") {
				t.Errorf("second mood log output = %q", out)
			}

			out = mustRun(t, "mood", "get", "2026-10-14")
			if !strings.Contains(out, "😢 sad") {
				t.Errorf("mood get output = %q", out)
			}

			out = mustRun(t, "--format", "json", "mood", "list")
			var records []models.MoodRecord
			if err := json.Unmarshal([]byte(out), &records); err != nil {
				t.Fatalf("mood list JSON = %q: %v", out, err)
			}
			if len(records) != 1 || records[0].Mood != models.MoodSad {
				t.Errorf("mood list = %+v", records)
			}

			mustRun(t, "mood", "delete", "2026-10-14")
			out = mustRun(t, "mood", "get", "2026-10-14")
			if !strings.Contains(out, "No mood logged for 2026-10-14") {
				t.Errorf("mood get after delete = %q", out)
			}
		})
	}
}

func TestMoodLog_InvalidInput(t *testing.T) {
	setupStore(t, storage.BackendSQLite)

	if _, err := runCLI(t, "", "mood", "log", "elated"); !errors.Is(err, models.ErrInvalidRecord) {
		t.Errorf("mood log with unknown mood error = %v, want ErrInvalidRecord", err)
	}
	if _, err := runCLI(t, "", "mood", "log", "good", "--date", "tomorrow-ish"); !errors.Is(err, models.ErrInvalidRecord) {
		t.Errorf("mood log with bad date error = %v, want ErrInvalidRecord", err)
	}
}

func TestMoodLog_Quiet(t *testing.T) {
	setupStore(t, storage.BackendSQLite)

	out := mustRun(t, "--quiet", "mood", "log", "okay")
	if out != "" {
		t.Errorf("quiet mood log printed %q", out)
	}
}

func TestQuizCommands(t *testing.T) {
	setupStore(t, storage.BackendSQLite)

	out := mustRun(t, "quiz", "take", "--answers", "3,3,3,3,3,3,3,3,2,2", "--date", "2026-10-15")
	if !strings.Contains(out, "Score: 28/50  Level: Moderate") {
		t.Errorf("quiz take output = %q", out)
	}

	out = mustRun(t, "quiz", "get", "2026-10-15")
	if !strings.Contains(out, "Level: Moderate") {
		t.Errorf("quiz get output = %q", out)
	}

	out = mustRun(t, "quiz", "list")
	if !strings.Contains(out, "2026-10-15") || !strings.Contains(out, "28") {
		t.Errorf("quiz list output = %q", out)
	}

	if _, err := runCLI(t, "", "quiz", "take", "--answers", "1,2,3"); err == nil {
		t.Error("quiz take with 3 answers should fail")
	}
	if _, err := runCLI(t, "", "quiz", "take", "--answers", "1,2,3,4,5,1,2,3,4,9"); err == nil {
		t.Error("quiz take with an out-of-range answer should fail")
	}
}

func TestParseAnswers(t *testing.T) {
	answers, err := parseAnswers("1, 2,3,4,5,5,4,3,2,1")
	if err != nil {
		t.Fatalf("parseAnswers() error = %v", err)
	}
	if answers[1] != 1 || answers[2] != 2 || answers[10] != 1 {
		t.Errorf("parseAnswers() = %v", answers)
	}

	for _, bad := range []string{"", "1,2", "1,2,3,4,5,6,7,8,9,x"} {
		if _, err := parseAnswers(bad); err == nil {
			t.Errorf("parseAnswers(%q) should fail", bad)
		}
	}
}

func TestJournalCommands(t *testing.T) {
	setupStore(t, storage.BackendSQLite)

	out, err := runCLI(t, "first draft from stdin", "journal", "write", "--draft", "--date", "2026-10-15")
	if err != nil {
		t.Fatalf("journal write from stdin error = %v", err)
	}
	if !strings.Contains(out, "✓ Saved draft journal entry for 2026-10-15 (4 words)") {
		t.Errorf("journal write output = %q", out)
	}

	mustRun(t, "journal", "write", "The final version.", "--date", "2026-10-15")

	_, err = runCLI(t, "", "journal", "write", "--draft", "overwrite?", "--date", "2026-10-15")
	if !errors.Is(err, storage.ErrFinalized) {
		t.Errorf("draft over final error = %v, want ErrFinalized", err)
	}

	out = mustRun(t, "journal", "show", "2026-10-15")
	if !strings.Contains(out, "(final,") || !strings.Contains(out, "The final version.") {
		t.Errorf("journal show output = %q", out)
	}

	file := filepath.Join(t.TempDir(), "entry.txt")
	if err := os.WriteFile(file, []byte("from a file\nsecond line"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	mustRun(t, "journal", "write", "--file", file, "--date", "2026-10-14")

	out = mustRun(t, "journal", "list")
	if !strings.Contains(out, "from a file") || strings.Contains(out, "second line") {
		t.Errorf("journal list should preview first lines only: %q", out)
	}

	mustRun(t, "journal", "delete", "2026-10-14")
	out = mustRun(t, "journal", "show", "2026-10-14")
	if !strings.Contains(out, "No journal entry for 2026-10-14") {
		t.Errorf("journal show after delete = %q", out)
	}
}

func TestStatsCommand(t *testing.T) {
	setupStore(t, storage.BackendSQLite)

	mustRun(t, "mood", "log", "great")
	mustRun(t, "mood", "log", "good", "--date", "yesterday")

	out := mustRun(t, "stats")
	for _, want := range []string{"Current streak: 2 days", "Longest streak: 2 days", "Last 7 days:", "😄 great"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "--format", "json", "stats")
	var view struct {
		Streak int               `json:"streak"`
		Week   []json.RawMessage `json:"week"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("stats JSON = %q: %v", out, err)
	}
	if view.Streak != 2 || len(view.Week) != 7 {
		t.Errorf("stats JSON = streak %d, %d days", view.Streak, len(view.Week))
	}
}

func TestExportImportCommands(t *testing.T) {
	setupStore(t, storage.BackendSQLite)

	mustRun(t, "mood", "log", "anxious", "--date", "2026-10-15")
	mustRun(t, "journal", "write", "exported words", "--date", "2026-10-15")

	snapshot := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, "export", "--as", "json", "--output", snapshot)

	out := mustRun(t, "export", "--as", "markdown")
	if !strings.Contains(out, "## Moods") || !strings.Contains(out, "exported words") {
		t.Errorf("markdown export = %q", out)
	}

	if _, err := runCLI(t, "", "export", "--as", "csv"); err == nil {
		t.Error("export --as csv should fail")
	}

	// Restore into a different store with --db
	other := filepath.Join(t.TempDir(), "restored.db")
	out = mustRun(t, "--db", other, "import", snapshot)
	if !strings.Contains(out, "✓ Imported 1 moods, 0 quizzes, 1 journal entries") {
		t.Errorf("import output = %q", out)
	}

	out = mustRun(t, "--db", other, "mood", "get", "2026-10-15")
	if !strings.Contains(out, "😰 anxious") {
		t.Errorf("restored mood = %q", out)
	}
}

func TestUnknownBackendFails(t *testing.T) {
	setupStore(t, storage.BackendSQLite)
	t.Setenv("MINDSPACE_BACKEND", "leveldb")

	if _, err := runCLI(t, "", "mood", "list"); err == nil {
		t.Error("an unknown backend should fail")
	}
}
