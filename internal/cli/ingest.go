package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"qbank/internal/document"
	"qbank/internal/ingest"
)

// IngestOptions holds flags for the ingest command.
type IngestOptions struct {
	*RootOptions
	SkipDuplicates      bool
	OverwriteDuplicates bool

	// RunTokens allows overriding the run token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunTokens ingest.RunTokenGenerator
}

// NewIngestCommand creates the ingest command.
func NewIngestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IngestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ingest <document.yaml>",
		Short: "Ingest one question document into both stores",
		Long: `Ingest a YAML question document into the spreadsheet and SQLite stores.

Every question gets a deterministic identifier derived from its text,
the document type, and the year. Questions already present in either
store are reported as duplicates; by default the command lists them and
asks whether to skip them and continue.

Example:
  qbank ingest physics_2024.yaml
  qbank ingest physics_2024.yaml --skip-duplicates --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.SkipDuplicates, "skip-duplicates", false, "skip duplicates without asking")
	cmd.Flags().BoolVar(&opts.OverwriteDuplicates, "overwrite-duplicates", false, "proceed past duplicates without asking (stored rows are never rewritten)")
	cmd.MarkFlagsMutuallyExclusive("skip-duplicates", "overwrite-duplicates")

	return cmd
}

func runIngest(opts *IngestOptions, path string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	color := shouldStyle(out)

	// The prompt moves to stderr under --format json so the data
	// stream stays parseable.
	promptOut := out
	if opts.Format == "json" {
		promptOut = cmd.ErrOrStderr()
	}

	var popts []ingest.Option
	switch {
	case opts.SkipDuplicates:
		popts = append(popts, ingest.WithPolicy(ingest.PolicySkip))
	case opts.OverwriteDuplicates:
		popts = append(popts, ingest.WithPolicy(ingest.PolicyOverwrite))
	default:
		popts = append(popts,
			ingest.WithPolicy(ingest.PolicyAsk),
			ingest.WithDecisionFunc(confirmDuplicates(cmd.InOrStdin(), promptOut, color)),
		)
	}
	if opts.RunTokens != nil {
		popts = append(popts, ingest.WithRunTokens(opts.RunTokens))
	}

	p := ingest.New(opts.SheetPath, opts.DBPath, opts.MaxTags, popts...)

	formatter := &OutputFormatter{Format: opts.Format, Writer: out}

	// Use the command's context if available (for testing), otherwise
	// fall back to Background.
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	res, err := p.ProcessDocument(ctx, path)
	if err != nil {
		slug, exitErr := classifyIngestError(err)
		if formatter.JSON() {
			_ = formatter.Error(slug, exitErr.Error())
		}
		return exitErr
	}

	if formatter.JSON() {
		return formatter.Success(res)
	}
	fmt.Fprint(out, renderResult(res, color))
	return nil
}

// classifyIngestError maps processor errors onto an error slug and an
// exit code: missing inputs and unopenable stores are command errors,
// anything that aborts an otherwise runnable ingestion is a failure.
func classifyIngestError(err error) (string, *ExitError) {
	switch {
	case errors.Is(err, ingest.ErrDeclined):
		return "declined", WrapExitError(ExitFailure, "ingestion declined", err)
	case errors.Is(err, document.ErrNotFound):
		return "not_found", WrapExitError(ExitCommandError, "document not found", err)
	case errors.Is(err, document.ErrSchema):
		return "schema", WrapExitError(ExitFailure, "document rejected", err)
	default:
		return "store", WrapExitError(ExitCommandError, "ingestion failed", err)
	}
}
