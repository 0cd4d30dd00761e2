// ABOUTME: CLI commands to export and import the whole store
// ABOUTME: Snapshots are YAML or JSON; Markdown is export-only
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/mindspace/internal/storage"
)

var (
	exportAs     string
	exportOutput string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every mood, quiz and journal entry",
		Long: `Export the whole store as a snapshot.

YAML and JSON snapshots can be restored with "mindspace import".
Markdown is a readable rendering and cannot be imported.

Examples:
  mindspace export > backup.yaml
  mindspace export --as json --output backup.json
  mindspace export --as markdown --output journal.md`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVar(&exportAs, "as", storage.FormatYAML, "Snapshot format (yaml, json, markdown)")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	switch exportAs {
	case storage.FormatYAML, storage.FormatJSON, storage.FormatMarkdown:
	default:
		return fmt.Errorf("--as must be yaml, json or markdown, got %q", exportAs)
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	snap, err := store.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	if exportOutput == "" {
		return storage.WriteSnapshot(cmd.OutOrStdout(), snap, exportAs)
	}
	if err := storage.WriteSnapshotFile(exportOutput, snap, exportAs); err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d moods, %d quizzes, %d journal entries to %s\n",
			len(snap.Moods), len(snap.StressQuizzes), len(snap.Journals), exportOutput)
	}
	return nil
}

// NewImportCmd creates the import command
func NewImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML or JSON snapshot",
		Long: `Import a snapshot written by "mindspace export".

Records in the snapshot replace records for the same date. Other records
are kept. Nothing is written if any record in the snapshot is invalid.

Examples:
  mindspace import backup.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := storage.ReadSnapshotFile(args[0])
			if err != nil {
				return err
			}

			store, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			result, err := store.Import(cmd.Context(), snap)
			if err != nil {
				return fmt.Errorf("importing: %w", err)
			}

			if outputFormat == "json" {
				return printJSON(cmd.OutOrStdout(), result)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d moods, %d quizzes, %d journal entries\n",
					result.Moods, result.StressQuizzes, result.Journals)
			}
			return nil
		},
	}
}
