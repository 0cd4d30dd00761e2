// ABOUTME: CLI commands for the stress self-assessment quiz
// ABOUTME: take scores ten answers; get and list show past results
package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/mindspace/internal/models"
)

var (
	quizAnswers string
	quizDate    string
)

// NewQuizCmd creates the quiz command group
func NewQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Take and review stress quizzes",
		Long: fmt.Sprintf(`Take the %d-question stress quiz and review past results.

Each answer is %d (never) to %d (very often). Scores up to 25 are Low,
up to 40 Moderate, and above that High. Retaking on the same day replaces
that day's result.

Examples:
  mindspace quiz take --answers 1,2,3,2,1,4,2,3,1,2
  mindspace quiz get
  mindspace quiz list --format json`, models.QuestionCount, models.MinAnswer, models.MaxAnswer),
	}

	cmd.AddCommand(newQuizTakeCmd(), newQuizGetCmd(), newQuizListCmd())
	return cmd
}

func newQuizTakeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "take",
		Short: "Record quiz answers and show the score",
		Args:  cobra.NoArgs,
		RunE:  runQuizTake,
	}
	cmd.Flags().StringVar(&quizAnswers, "answers", "", "Comma-separated answers in question order")
	cmd.Flags().StringVar(&quizDate, "date", "", "Date to record for (YYYY-MM-DD, today, yesterday)")
	_ = cmd.MarkFlagRequired("answers")
	return cmd
}

// parseAnswers turns "1,2,3" into question id -> answer, ids starting at 1
func parseAnswers(s string) (map[int]int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != models.QuestionCount {
		return nil, fmt.Errorf("%w: need %d answers, got %d", models.ErrInvalidRecord, models.QuestionCount, len(parts))
	}

	answers := make(map[int]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: answer %d is not a number: %q", models.ErrInvalidRecord, i+1, p)
		}
		answers[i+1] = v
	}
	return answers, nil
}

func runQuizTake(cmd *cobra.Command, args []string) error {
	answers, err := parseAnswers(quizAnswers)
	if err != nil {
		return err
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	date, err := resolveDate(store, quizDate)
	if err != nil {
		return err
	}

	r, err := store.StressQuizzes.Record(cmd.Context(), date, answers, store.Now())
	if err != nil {
		return fmt.Errorf("recording quiz: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), r)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded stress quiz for %s\n", r.Date)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/%d  Level: %s\n", r.Score, models.MaxScore, r.Level)
	return nil
}

func newQuizGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [date]",
		Short: "Show the quiz result for a day (default today)",
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
			r, err := store.StressQuizzes.Get(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("getting quiz: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), r)
			}
			if r == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No stress quiz taken on %s\n", date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  Score: %d/%d  Level: %s\n", r.Date, r.Score, models.MaxScore, r.Level)
			if verbose {
				for id := 1; id <= models.QuestionCount; id++ {
					fmt.Fprintf(cmd.OutOrStdout(), "  Q%d: %d\n", id, r.Answers[id])
				}
			}
			return nil
		},
	}
}

func newQuizListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every quiz result, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.StressQuizzes.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing quizzes: %w", err)
			}
			sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), records)
			}
			if len(records) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No stress quizzes taken yet")
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "DATE\tSCORE\tLEVEL\n")
			fmt.Fprintf(w, "----\t-----\t-----\n")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%d\t%s\n", r.Date, r.Score, r.Level)
			}
			_ = w.Flush()
			return nil
		},
	}
}
