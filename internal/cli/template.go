package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qbank/internal/sheet"
)

// TemplateOptions holds flags for the template command.
type TemplateOptions struct {
	*RootOptions
	Force bool
}

// NewTemplateCommand creates the template command. It only writes the
// header-only spreadsheet; setup initializes both stores and replaced
// it.
func NewTemplateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TemplateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "template",
		Short:         "Create a header-only spreadsheet",
		Deprecated:    `use "qbank setup" instead`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplate(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing spreadsheet")

	return cmd
}

func runTemplate(opts *TemplateOptions, cmd *cobra.Command) error {
	if _, err := os.Stat(opts.SheetPath); err == nil && !opts.Force {
		return NewExitError(ExitCommandError, fmt.Sprintf("%s already exists (use --force to overwrite)", opts.SheetPath))
	}
	if err := sheet.Create(opts.SheetPath, opts.MaxTags); err != nil {
		return WrapExitError(ExitCommandError, "create spreadsheet", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", opts.SheetPath)
	return nil
}
