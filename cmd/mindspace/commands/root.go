// ABOUTME: Root CLI command and global flags
// ABOUTME: Wires every subcommand and the verbose/quiet/format/db options
package commands

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	dbPath       string
)

const banner = `
███╗   ███╗██╗███╗   ██╗██████╗ ███████╗██████╗  █████╗  ██████╗███████╗
████╗ ████║██║████╗  ██║██╔══██╗██╔════╝██╔══██╗██╔══██╗██╔════╝██╔════╝
██╔████╔██║██║██╔██╗ ██║██║  ██║███████╗██████╔╝███████║██║     █████╗
██║╚██╔╝██║██║██║╚██╗██║██║  ██║╚════██║██╔═══╝ ██╔══██║██║     ██╔══╝
██║ ╚═╝ ██║██║██║ ╚████║██████╔╝███████║██║     ██║  ██║╚██████╗███████╗
╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝ ╚══════╝╚═╝     ╚═╝  ╚═╝ ╚═════╝╚══════╝
`

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mindspace",
		Short: "Private mood, stress and journal tracker",
		Long: banner + `
MindSpace keeps a daily mood log, stress self-assessments and a private
journal on this machine. Nothing leaves your device.

Data lives under $XDG_DATA_HOME/mindspace unless MINDSPACE_DB_PATH or
--db says otherwise.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Storage lifecycle logs are only interesting with --verbose
			if verbose {
				log.SetOutput(os.Stderr)
			} else {
				log.SetOutput(io.Discard)
			}

			switch outputFormat {
			case "auto", "json":
				return nil
			default:
				return fmt.Errorf("--format must be auto or json, got %q", outputFormat)
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show warnings and extra detail")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress confirmations")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json)")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (overrides MINDSPACE_DB_PATH)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewMoodCmd(),
		NewQuizCmd(),
		NewJournalCmd(),
		NewStatsCmd(),
		NewExportCmd(),
		NewImportCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
