package ingest

import (
	"fmt"
	"log/slog"
	"strings"

	"qbank/internal/document"
	"qbank/internal/question"
)

// staged couples a validated record with the 1-based position of the
// entry it came from, for reporting against the source document.
type staged struct {
	Index  int
	Record question.Record
}

// validateDocument checks every entry in order and partitions them into
// staged records, duplicates and malformed entries. Nothing is written
// here; staged records are the in-memory write-ahead list for the
// commit phase.
//
// Checks run in a fixed order per entry, first failure wins:
//
//  1. duplicate question text (against the index, which includes
//     records staged earlier in this document)
//  2. question must have text or an image
//  3. required keys: options A-D and answer must be present, the
//     missing set is reported whole
//  4. every option must have text or an image
//
// Overlong tag lists are truncated with a warning, never rejected.
// The index is mutated as records stage so an intra-document repeat of
// the same text is caught by check 1.
func validateDocument(doc *document.Document, idx *Index, maxTags int) (recs []staged, dups []Duplicate, bad []Malformed) {
	for _, entry := range doc.Questions {
		if entry.Text != "" && idx.Contains(entry.Text) {
			dups = append(dups, Duplicate{Index: entry.Index, Text: entry.Text})
			continue
		}

		if entry.Text == "" && entry.ImageRef == "" {
			bad = append(bad, Malformed{
				Index:  entry.Index,
				Reason: "question has neither text nor image",
			})
			continue
		}

		if missing := missingFields(entry); len(missing) > 0 {
			bad = append(bad, Malformed{
				Index:  entry.Index,
				Reason: "missing required fields: " + strings.Join(missing, ", "),
			})
			continue
		}

		if label, ok := emptyOption(entry); ok {
			bad = append(bad, Malformed{
				Index:  entry.Index,
				Reason: fmt.Sprintf("option %s has neither text nor image", label),
			})
			continue
		}

		tags := entry.Tags
		if len(tags) > maxTags {
			slog.Warn("tag limit exceeded, truncating",
				"question", entry.Index,
				"tags", len(tags),
				"limit", maxTags,
			)
			tags = tags[:maxTags]
		}

		rec := question.Record{
			ID:       question.GenerateID(entry.Text, doc.Type, doc.Year),
			Text:     entry.Text,
			ImageRef: entry.ImageRef,
			Answer:   entry.Answer,
			Type:     doc.Type,
			Year:     doc.Year,
			Tags:     tags,
		}
		for i, label := range question.OptionLabels {
			rec.Options[i] = entry.Options[label]
		}

		recs = append(recs, staged{Index: entry.Index, Record: rec})
		idx.Add(entry.Text)
	}

	return recs, dups, bad
}

// missingFields returns the required keys absent from the entry, in
// reporting order: options first, then answer.
func missingFields(entry document.Entry) []string {
	var missing []string
	for _, label := range question.OptionLabels {
		if _, ok := entry.Options[label]; !ok {
			missing = append(missing, label)
		}
	}
	if !entry.HasAnswer {
		missing = append(missing, "answer")
	}
	return missing
}

// emptyOption returns the first option that is present but has neither
// text nor an image.
func emptyOption(entry document.Entry) (string, bool) {
	for _, label := range question.OptionLabels {
		if entry.Options[label].Empty() {
			return label, true
		}
	}
	return "", false
}
