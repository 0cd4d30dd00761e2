// ABOUTME: CLI command for mood streaks and the weekly trend
// ABOUTME: Everything shown is recomputed from stored records on each run
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/mindspace/internal/models"
	"github.com/harper/mindspace/internal/storage"
)

// statsView is the JSON shape of the stats command
type statsView struct {
	*storage.MoodStats
	LatestQuiz     *models.StressQuizRecord `json:"latest_quiz,omitempty"`
	JournalEntries int                      `json:"journal_entries"`
	JournalWords   int                      `json:"journal_words"`
}

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show mood streaks and the last seven days",
		Long: `Show your current mood streak, longest streak, the mood for each of
the last seven days, the latest stress quiz and journal totals.

Examples:
  mindspace stats
  mindspace stats --format json`,
		Args: cobra.NoArgs,
		RunE: runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}
	latest, err := store.StressQuizzes.Latest(ctx)
	if err != nil {
		return fmt.Errorf("getting latest quiz: %w", err)
	}
	journals, err := store.Journals.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("listing journals: %w", err)
	}

	view := statsView{MoodStats: stats, LatestQuiz: latest, JournalEntries: len(journals)}
	for _, r := range journals {
		view.JournalWords += wordCount(r)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), view)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Today:          %s\n", stats.Today)
	fmt.Fprintf(out, "Current streak: %s\n", plural(stats.Streak, "day"))
	fmt.Fprintf(out, "Longest streak: %s\n", plural(stats.LongestStreak, "day"))
	fmt.Fprintf(out, "Days logged:    %d\n", stats.TotalDays)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Last 7 days:")
	for _, day := range stats.Week {
		label := day.Date
		if t, err := time.Parse(models.DateLayout, day.Date); err == nil {
			label = t.Format("Mon 01/02")
		}
		if day.Mood == nil {
			fmt.Fprintf(out, "  %s  ·\n", label)
			continue
		}
		fmt.Fprintf(out, "  %s  %s %s\n", label, *day.Mood, day.Mood.Name())
	}

	if len(stats.WeekCounts) > 0 {
		fmt.Fprint(out, "\nThis week:")
		for _, m := range models.Moods {
			if n := stats.WeekCounts[m]; n > 0 {
				fmt.Fprintf(out, " %s×%d", m, n)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
	if latest != nil {
		fmt.Fprintf(out, "Latest stress quiz: %s, %d/%d (%s)\n", latest.Date, latest.Score, models.MaxScore, latest.Level)
	} else {
		fmt.Fprintln(out, "Latest stress quiz: none")
	}
	fmt.Fprintf(out, "Journal: %d entries, %s\n", view.JournalEntries, plural(view.JournalWords, "word"))
	return nil
}
