package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qbank/internal/sheet"
	"qbank/internal/store"
)

// SetupOptions holds flags for the setup command.
type SetupOptions struct {
	*RootOptions
	Force bool
}

// NewSetupCommand creates the setup command.
func NewSetupCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SetupOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Initialize the database and spreadsheet stores",
		Long: `Initialize both stores: the SQLite database (schema applied, reopening
an existing database is harmless) and the header-only spreadsheet.

An existing spreadsheet is only replaced after confirmation, because
overwriting it discards every stored row. --force skips the prompt.

Example:
  qbank setup
  qbank setup --sheet bank.xlsx --db bank.db --force`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing spreadsheet without asking")

	return cmd
}

func runSetup(opts *SetupOptions, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	color := shouldStyle(out)

	fmt.Fprintf(out, "[1/2] Database %s\n", opts.DBPath)
	st, err := store.Open(opts.DBPath, opts.MaxTags)
	if err != nil {
		return WrapExitError(ExitCommandError, "initialize database", err)
	}
	if err := st.Close(); err != nil {
		return WrapExitError(ExitCommandError, "close database", err)
	}
	fmt.Fprintln(out, stylize("  ready", color, styleOK))

	fmt.Fprintf(out, "[2/2] Spreadsheet %s\n", opts.SheetPath)
	if _, err := os.Stat(opts.SheetPath); err == nil && !opts.Force {
		prompt := fmt.Sprintf("  %s already exists. Overwrite? (y/n): ", opts.SheetPath)
		if !confirm(cmd.InOrStdin(), out, prompt) {
			fmt.Fprintln(out, "  kept existing spreadsheet")
			return nil
		}
	}
	if err := sheet.Create(opts.SheetPath, opts.MaxTags); err != nil {
		return WrapExitError(ExitCommandError, "create spreadsheet", err)
	}
	fmt.Fprintln(out, stylize("  ready", color, styleOK))

	return nil
}
