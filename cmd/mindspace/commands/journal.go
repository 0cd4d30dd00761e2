// ABOUTME: CLI commands for the private journal
// ABOUTME: write saves drafts or final entries; show, list and delete read them back
package commands

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/mindspace/internal/models"
)

var (
	journalFile  string
	journalDraft bool
	journalDate  string
)

// NewJournalCmd creates the journal command group
func NewJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write and read journal entries",
		Long: `Write one journal entry per day.

Entries saved with --draft stay editable drafts. Saving without --draft
finalizes the entry; a later draft save for that day is refused. Writing
empty text removes the entry.

Examples:
  mindspace journal write "Felt calmer after the walk"
  mindspace journal write --draft --file notes.txt
  echo "quick thought" | mindspace journal write --draft
  mindspace journal show yesterday`,
	}

	cmd.AddCommand(newJournalWriteCmd(), newJournalShowCmd(), newJournalListCmd(), newJournalDeleteCmd())
	return cmd
}

func newJournalWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write [text]",
		Short: "Save a journal entry from text, a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runJournalWrite,
	}
	cmd.Flags().StringVar(&journalFile, "file", "", "Read the entry from a file")
	cmd.Flags().BoolVar(&journalDraft, "draft", false, "Save as an editable draft")
	cmd.Flags().StringVar(&journalDate, "date", "", "Date of the entry (YYYY-MM-DD, today, yesterday)")
	return cmd
}

func runJournalWrite(cmd *cobra.Command, args []string) error {
	var text string
	if journalFile != "" {
		data, err := os.ReadFile(journalFile) // #nosec G304
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		text = string(data)
	} else if len(args) > 0 {
		text = args[0]
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	date, err := resolveDate(store, journalDate)
	if err != nil {
		return err
	}

	save := store.Journals.SaveFinal
	if journalDraft {
		save = store.Journals.SaveDraft
	}
	r, err := save(cmd.Context(), date, text)
	if err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), r)
	}
	if quiet {
		return nil
	}
	if r == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared journal entry for %s\n", date)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s journal entry for %s (%s)\n",
		r.Status(), r.Date, plural(wordCount(*r), "word"))
	return nil
}

func newJournalShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [date]",
		Short: "Show the journal entry for a day (default today)",
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
			r, err := store.Journals.Get(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("getting journal: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), r)
			}
			if r == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "No journal entry for %s\n", date)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s, edited %s)\n\n%s\n",
				r.Date, r.Status(), formatTime(r.LastModified, store.Now()), r.Content)
			return nil
		},
	}
}

func newJournalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journal entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := store.Journals.GetAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing journals: %w", err)
			}
			sort.Slice(records, func(i, j int) bool { return records[i].Date > records[j].Date })

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), records)
			}
			if len(records) == 0 {
				if !quiet {
					fmt.Fprintln(cmd.OutOrStdout(), "No journal entries yet")
				}
				return nil
			}

			now := store.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "DATE\tSTATUS\tEDITED\tPREVIEW\n")
			fmt.Fprintf(w, "----\t------\t------\t-------\n")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					r.Date, r.Status(), formatTime(r.LastModified, now), truncate(firstLine(r.Content), 40))
			}
			_ = w.Flush()

			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d entries\n", len(records))
			}
			return nil
		},
	}
}

func newJournalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <date>",
		Short: "Delete the journal entry for a day",
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
			if err := store.Journals.Delete(cmd.Context(), date); err != nil {
				return fmt.Errorf("deleting journal: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted journal entry for %s\n", date)
			}
			return nil
		},
	}
}

// wordCount counts whitespace-separated words in an entry
func wordCount(r models.JournalRecord) int {
	return len(strings.Fields(r.Content))
}
