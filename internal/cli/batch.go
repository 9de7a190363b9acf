package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"qbank/internal/ingest"
)

// BatchOptions holds flags for the batch command.
type BatchOptions struct {
	*RootOptions
	OverwriteDuplicates bool
}

// BatchReport is the JSON payload for the batch command.
type BatchReport struct {
	Dir       string          `json:"dir"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Documents []DocumentEntry `json:"documents"`
}

// DocumentEntry is one document's outcome inside a BatchReport.
type DocumentEntry struct {
	Path   string         `json:"path"`
	Error  string         `json:"error,omitempty"`
	Result *ingest.Result `json:"result,omitempty"`
}

// NewBatchCommand creates the batch command.
func NewBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Ingest every question document in a directory",
		Long: `Ingest all *.yaml and *.yml documents in a directory, in sorted order.

Batch mode never prompts: duplicates are skipped. Documents are
independent - a rejected document is reported and the batch moves on
to the next one.

Example:
  qbank batch ./documents
  qbank batch ./documents --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.OverwriteDuplicates, "overwrite-duplicates", false, "proceed past duplicates (stored rows are never rewritten)")

	return cmd
}

func runBatch(opts *BatchOptions, dir string, cmd *cobra.Command) error {
	policy := ingest.PolicySkip
	if opts.OverwriteDuplicates {
		policy = ingest.PolicyOverwrite
	}
	p := ingest.New(opts.SheetPath, opts.DBPath, opts.MaxTags, ingest.WithPolicy(policy))

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	batch, err := p.ProcessBatch(ctx, dir)
	if err != nil {
		exitErr := WrapExitError(ExitCommandError, "batch failed", err)
		if formatter.JSON() {
			_ = formatter.Error("batch", exitErr.Error())
		}
		return exitErr
	}

	if formatter.JSON() {
		if err := formatter.Success(batchReport(batch)); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, renderBatch(batch, shouldStyle(out)))
	}

	if failed := batch.Failed(); failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d document(s) failed", failed, len(batch.Outcomes)))
	}
	return nil
}

func batchReport(batch ingest.BatchResult) BatchReport {
	report := BatchReport{
		Dir:       batch.Dir,
		Succeeded: batch.Succeeded(),
		Failed:    batch.Failed(),
		Documents: make([]DocumentEntry, 0, len(batch.Outcomes)),
	}
	for _, o := range batch.Outcomes {
		entry := DocumentEntry{Path: o.Path}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		} else {
			res := o.Result
			entry.Result = &res
		}
		report.Documents = append(report.Documents, entry)
	}
	return report
}
