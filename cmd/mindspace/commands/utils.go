// ABOUTME: Shared utility functions for CLI commands
// ABOUTME: Store setup, date arguments, and output helpers
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/mindspace/internal/config"
	"github.com/harper/mindspace/internal/models"
	"github.com/harper/mindspace/internal/storage"
	"github.com/harper/mindspace/internal/util"
)

const (
	openAttempts = 3
	openBackoff  = 50 * time.Millisecond
)

// openStore loads config, applies --db and opens the store
func openStore(cmd *cobra.Command) (*storage.Storage, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using %s\n", cfg)
	}

	store := storage.New(
		storage.OpenerFor(cfg.Backend, cfg.DBPath, cfg.BusyTimeout),
		storage.WithClock(storage.SystemClock{Location: loc}),
	)
	// Retry transient open failures such as a locked database file
	err = util.Retry(cmd.Context(), openAttempts, openBackoff,
		func(err error) bool { return errors.Is(err, storage.ErrStorageIO) },
		func() error { return store.Open(cmd.Context()) })
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return store, nil
}

// resolveDate turns "", "today", "yesterday" or YYYY-MM-DD into a date key
func resolveDate(store *storage.Storage, s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return store.Today(), nil
	case "yesterday":
		return models.DaysBefore(store.Now(), 1), nil
	}
	if err := models.ValidateDate(s); err != nil {
		return "", err
	}
	return s, nil
}

// dateArg returns the first argument or "" when none was given
func dateArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// printJSON writes v as indented JSON
func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// firstLine returns s up to its first newline
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// formatTime formats a time for display relative to now
func formatTime(t, now time.Time) string {
	diff := now.Sub(t)

	if diff < time.Minute {
		return "just now"
	} else if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	} else if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	} else if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.In(now.Location()).Format(models.DateLayout)
}

// plural returns "1 day" or "3 days"
func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
