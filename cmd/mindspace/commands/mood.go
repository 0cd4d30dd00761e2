// ABOUTME: CLI commands for the daily mood log
// ABOUTME: log, get, list and delete moods keyed by date
package commands

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/mindspace/internal/models"
)

var (
	moodDate string
	moodNote string
)

// NewMoodCmd creates the mood command group
func NewMoodCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Log and review daily moods",
		Long: `Log one mood per day and review past entries.

Moods: ` + moodChoices() + `

Examples:
  mindspace mood log good --note "long walk"
  mindspace mood log 😔 --date yesterday
  mindspace mood get 2026-10-14
  mindspace mood list --format json`,
	}

	cmd.AddCommand(newMoodLogCmd(), newMoodGetCmd(), newMoodListCmd(), newMoodDeleteCmd())
	return cmd
}

func moodChoices() string {
	choices := make([]string, len(models.Moods))
	for i, m := range models.Moods {
		choices[i] = fmt.Sprintf("%s %s", m, m.Name())
	}
	return strings.Join(choices, ", ")
}

func newMoodLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <mood>",
		Short: "Log today's mood (replaces an earlier one for the same day)",
		Args:  cobra.ExactArgs(1),
		RunE:  runMoodLog,
	}
	cmd.Flags().StringVar(&moodDate, "date", "", "Date to log for (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&moodNote, "note", "", "Optional note")
	return cmd
}

func runMoodLog(cmd *cobra.Command, args []string) error {
	mood, err := models.ParseMood(args[0])
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	date, err := resolveDate(store, moodDate)
	if err != nil {
		return err
	}

	created, err := store.Moods.Log(cmd.Context(), date, mood, moodNote)
	if err != nil {
		return fmt.Errorf("logging mood: %w", err)
	}

	streak, err := store.Streak(cmd.Context())
	if err != nil {
		return fmt.Errorf("computing streak: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"date":    date,
			"mood":    mood,
			"created": created,
			"streak":  streak,
		})
	}
	if !quiet {
		verb := "Logged"
		if !created {
			verb = "Updated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s %s %s for %s\n", verb, mood, mood.Name(), date)
		fmt.Fprintf(cmd.OutOrStdout(), "Streak: %s\n", plural(streak, "day"))
	}
	return nil
}

func newMoodGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [date]",
		Short: "Show the mood for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			date, err := resolveDate(store, dateArg(args))
			if err != nil {
				return err
			}
			r, err := store.Moods.Get(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("getting mood: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), r)
			}
			if r == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No mood logged for %s\n", date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s %s\n", r.Date, r.Mood, r.Mood.Name())
			if r.Note != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Note: %s\n", r.Note)
			}
			return nil
		},
	}
}

func newMoodListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every logged mood, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.Moods.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing moods: %w", err)
			}
			sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), records)
			}
			if len(records) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No moods logged yet")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "DATE\tMOOD\tNOTE\n")
			fmt.Fprintf(w, "----\t----\t----\n")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s %s\t%s\n", r.Date, r.Mood, r.Mood.Name(), truncate(r.Note, 40))
			}
			_ = w.Flush()

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %s\n", plural(len(records), "day"))
			}
			return nil
		},
	}
}

func newMoodDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the mood for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			date, err := resolveDate(store, args[0])
			if err != nil {
				return err
			}
			if err := store.Moods.Delete(cmd.Context(), date); err != nil {
				return fmt.Errorf("deleting mood: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted mood for %s\n", date)
			}
			return nil
		},
	}
}
