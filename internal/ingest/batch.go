package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Outcome pairs one batch member with what happened to it.
type Outcome struct {
	Path   string `json:"path"`
	Result Result `json:"result"`
	Err    error  `json:"-"`
}

// BatchResult tallies a directory run.
type BatchResult struct {
	Dir      string    `json:"dir"`
	Outcomes []Outcome `json:"outcomes"`
}

// Succeeded returns the number of committed documents.
func (b BatchResult) Succeeded() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of documents that aborted.
func (b BatchResult) Failed() int {
	return len(b.Outcomes) - b.Succeeded()
}

// ProcessBatch ingests every *.yaml and *.yml file in dir, in sorted
// path order so runs are reproducible. Documents are fully independent:
// a failing one is recorded in its Outcome and processing continues
// with the next. The error return covers only the batch itself (for
// example an unreadable directory), never a member document.
func (p *Processor) ProcessBatch(ctx context.Context, dir string) (BatchResult, error) {
	res := BatchResult{Dir: dir}

	info, err := os.Stat(dir)
	if err != nil {
		return res, fmt.Errorf("read batch directory: %w", err)
	}
	if !info.IsDir() {
		return res, fmt.Errorf("read batch directory: %s is not a directory", dir)
	}

	files, err := listDocuments(dir)
	if err != nil {
		return res, err
	}

	slog.Info("batch starting", "dir", dir, "files", len(files))

	for _, path := range files {
		docRes, err := p.ProcessDocument(ctx, path)
		if err != nil {
			slog.Error("document failed", "path", path, "error", err)
		}
		res.Outcomes = append(res.Outcomes, Outcome{Path: path, Result: docRes, Err: err})
	}

	slog.Info("batch finished",
		"dir", dir,
		"succeeded", res.Succeeded(),
		"failed", res.Failed(),
	)

	return res, nil
}

// listDocuments returns the YAML files in dir, sorted by path.
func listDocuments(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}
