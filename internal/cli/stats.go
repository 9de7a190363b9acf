package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qbank/internal/sheet"
	"qbank/internal/store"
)

// StatsReport aggregates both stores' statistics for the stats
// command. The two totals should match; when they do not, the stores
// have drifted (see the batch/ingest collision and abort reporting).
type StatsReport struct {
	Sheet StoreStats `json:"sheet"`
	Store StoreStats `json:"database"`
}

// StoreStats is one store's share of the report.
type StoreStats struct {
	Path       string         `json:"path"`
	Total      int            `json:"total"`
	WithImages int            `json:"with_images"`
	ByType     map[string]int `json:"by_type,omitempty"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Report question counts from both stores",
		Long: `Report totals, image-bearing counts, and a per-type breakdown from the
spreadsheet and the database. Read-only: running it twice in a row
yields identical output.

Example:
  qbank stats
  qbank stats --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(rootOpts, cmd)
		},
	}

	return cmd
}

func runStats(opts *RootOptions, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	fail := func(slug string, exitErr error) error {
		if formatter.JSON() {
			_ = formatter.Error(slug, exitErr.Error())
		}
		return exitErr
	}

	// Opening a missing database would create an empty one; stats must
	// not have that side effect.
	if _, err := os.Stat(opts.DBPath); err != nil {
		return fail("not_found", WrapExitError(ExitCommandError, "database not found (run qbank setup first)", err))
	}

	st, err := store.Open(opts.DBPath, opts.MaxTags)
	if err != nil {
		return fail("store", WrapExitError(ExitCommandError, "open database", err))
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	dbStats, err := st.Stats(ctx)
	if err != nil {
		return fail("store", WrapExitError(ExitCommandError, "read database stats", err))
	}

	sh, err := sheet.Open(opts.SheetPath, opts.MaxTags)
	if err != nil {
		return fail("store", WrapExitError(ExitCommandError, "open spreadsheet", err))
	}
	defer sh.Close()

	sheetStats, err := sh.Stats()
	if err != nil {
		return fail("store", WrapExitError(ExitCommandError, "read spreadsheet stats", err))
	}

	report := StatsReport{
		Sheet: StoreStats{
			Path:       opts.SheetPath,
			Total:      sheetStats.Total,
			WithImages: sheetStats.WithImages,
			ByType:     sheetStats.ByType,
		},
		Store: StoreStats{
			Path:       opts.DBPath,
			Total:      dbStats.Total,
			WithImages: dbStats.WithImages,
			ByType:     dbStats.ByType,
		},
	}

	if formatter.JSON() {
		return formatter.Success(report)
	}
	fmt.Fprint(out, renderStats(report, shouldStyle(out)))
	return nil
}
