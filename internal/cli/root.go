package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"qbank/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	SheetPath string
	DBPath    string
	MaxTags   int
	Verbose   bool
	Format    string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the qbank CLI. Store
// path and tag bound defaults come from internal/config, so flags are
// only needed to override the environment.
func NewRootCommand() *cobra.Command {
	cfg := config.Load()
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "qbank",
		Short: "qbank - question bank ingestion",
		Long: `Ingests YAML question documents into a spreadsheet/SQLite store pair,
deriving a deterministic identifier per question and skipping duplicates
across both stores.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.MaxTags < 1 {
				return fmt.Errorf("invalid max-tags %d: must be at least 1", opts.MaxTags)
			}
			configureLogging(opts.Verbose)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.SheetPath, "sheet", cfg.SheetPath, "path to the spreadsheet store")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", cfg.DBPath, "path to the SQLite store")
	cmd.PersistentFlags().IntVar(&opts.MaxTags, "max-tags", cfg.MaxTags, "tag columns per record")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	// Add subcommands
	cmd.AddCommand(NewIngestCommand(opts))
	cmd.AddCommand(NewBatchCommand(opts))
	cmd.AddCommand(NewSetupCommand(opts))
	cmd.AddCommand(NewTemplateCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// configureLogging routes slog to stderr so diagnostics never mix
// with command output on stdout.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
