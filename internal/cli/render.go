package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"qbank/internal/ingest"
)

// Styles for text output. Everything drops to plain text when the
// writer is not a terminal, so rendered output stays byte-stable in
// pipes and tests.
var (
	styleHeading = lipgloss.NewStyle().Bold(true)
	styleOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleBad     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// shouldStyle reports whether styled output is appropriate for w.
func shouldStyle(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// stylize applies optional styling.
func stylize(text string, color bool, style lipgloss.Style) string {
	if !color {
		return text
	}
	return style.Render(text)
}

// renderResult renders the post-ingestion summary block.
func renderResult(res ingest.Result, color bool) string {
	var b strings.Builder

	year := res.Year
	if year == "" {
		year = "Not specified"
	}

	b.WriteString(stylize("Ingested "+res.Path, color, styleHeading) + "\n")
	b.WriteString(fmt.Sprintf("Type: %s  Year: %s\n\n", res.Type, year))

	b.WriteString(fmt.Sprintf("  Added:      %d\n", res.Accepted))
	b.WriteString(fmt.Sprintf("  Duplicates: %d\n", len(res.Duplicates)))
	b.WriteString(fmt.Sprintf("  Malformed:  %d\n", len(res.Malformed)))
	if res.Collisions > 0 {
		b.WriteString(stylize(fmt.Sprintf("  Collisions: %d (rename these questions)", res.Collisions), color, styleBad) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Spreadsheet total: %d\n", res.SheetTotal))
	b.WriteString(fmt.Sprintf("Database total:    %d\n", res.StoreTotal))

	return b.String()
}

// renderDuplicates lists duplicates for the confirmation prompt,
// truncated to the first maxShownDuplicates.
func renderDuplicates(dups []ingest.Duplicate, color bool) string {
	var b strings.Builder

	b.WriteString(stylize(fmt.Sprintf("Found %d duplicate question(s):", len(dups)), color, styleWarn) + "\n")

	shown := dups
	if len(shown) > maxShownDuplicates {
		shown = shown[:maxShownDuplicates]
	}
	for _, d := range shown {
		text := d.Text
		if text == "" {
			text = "(image-only question)"
		}
		b.WriteString(fmt.Sprintf("  %d. %s\n", d.Index, text))
	}
	if rest := len(dups) - len(shown); rest > 0 {
		b.WriteString(fmt.Sprintf("  ... and %d more\n", rest))
	}

	return b.String()
}

// renderBatch renders the per-document lines and the closing tally.
func renderBatch(batch ingest.BatchResult, color bool) string {
	var b strings.Builder

	for _, o := range batch.Outcomes {
		name := filepath.Base(o.Path)
		if o.Err != nil {
			b.WriteString(stylize("✗ "+name, color, styleBad))
			b.WriteString(fmt.Sprintf("  %v\n", o.Err))
			continue
		}
		b.WriteString(stylize("✓ "+name, color, styleOK))
		b.WriteString(fmt.Sprintf("  added %d, duplicates %d, malformed %d\n",
			o.Result.Accepted, len(o.Result.Duplicates), len(o.Result.Malformed)))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d succeeded, %d failed of %d document(s)\n",
		batch.Succeeded(), batch.Failed(), len(batch.Outcomes)))

	return b.String()
}

// renderStats renders both stores' statistics.
func renderStats(report StatsReport, color bool) string {
	var b strings.Builder
	b.WriteString(renderStoreStats("Spreadsheet", report.Sheet, color))
	b.WriteString("\n")
	b.WriteString(renderStoreStats("Database", report.Store, color))
	return b.String()
}

func renderStoreStats(label string, s StoreStats, color bool) string {
	var b strings.Builder

	b.WriteString(stylize(fmt.Sprintf("%s (%s)", label, s.Path), color, styleHeading) + "\n")
	b.WriteString(fmt.Sprintf("  Total:       %d\n", s.Total))
	b.WriteString(fmt.Sprintf("  With images: %d\n", s.WithImages))

	if len(s.ByType) > 0 {
		b.WriteString("  By type:\n")
		keys := make([]string, 0, len(s.ByType))
		for k := range s.ByType {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("    %s: %d\n", k, s.ByType[k]))
		}
	}

	return b.String()
}
