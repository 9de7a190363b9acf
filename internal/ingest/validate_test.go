package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qbank/internal/document"
	"qbank/internal/question"
)

func entryWithOptions(index int, text string) document.Entry {
	return document.Entry{
		Index: index,
		Text:  text,
		Options: map[string]question.Option{
			"A": {Text: "first"},
			"B": {Text: "second"},
			"C": {Text: "third"},
			"D": {Text: "fourth"},
		},
		Answer:    "A",
		HasAnswer: true,
	}
}

func TestValidateDocument_StagesCleanEntries(t *testing.T) {
	doc := &document.Document{
		Type: "mcq",
		Year: "2024",
		Questions: []document.Entry{
			entryWithOptions(1, "What is 2 + 2?"),
			entryWithOptions(2, "What is 3 + 3?"),
		},
	}

	recs, dups, bad := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	require.Len(t, recs, 2)
	assert.Empty(t, dups)
	assert.Empty(t, bad)

	assert.Equal(t, 1, recs[0].Index)
	assert.Equal(t, "What is 2 + 2?", recs[0].Record.Text)
	assert.Equal(t, "mcq", recs[0].Record.Type)
	assert.Equal(t, "2024", recs[0].Record.Year)
	assert.Equal(t, question.GenerateID("What is 2 + 2?", "mcq", "2024"), recs[0].Record.ID)
	assert.Equal(t, "first", recs[0].Record.Options[0].Text)
}

func TestValidateDocument_DuplicateAgainstIndex(t *testing.T) {
	doc := &document.Document{
		Type:      "mcq",
		Questions: []document.Entry{entryWithOptions(1, "Already Stored")},
	}
	idx := NewIndex([]string{"already stored"})

	recs, dups, bad := validateDocument(doc, idx, question.DefaultMaxTags)

	assert.Empty(t, recs)
	assert.Empty(t, bad)
	require.Len(t, dups, 1)
	assert.Equal(t, 1, dups[0].Index)
	assert.Equal(t, "Already Stored", dups[0].Text)
}

func TestValidateDocument_DuplicateWithinDocument(t *testing.T) {
	doc := &document.Document{
		Type: "mcq",
		Questions: []document.Entry{
			entryWithOptions(1, "Same Text"),
			entryWithOptions(2, "same text"),
		},
	}

	recs, dups, _ := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	require.Len(t, recs, 1, "first occurrence stages")
	require.Len(t, dups, 1, "second occurrence is a duplicate")
	assert.Equal(t, 2, dups[0].Index)
}

func TestValidateDocument_DuplicateCheckRunsFirst(t *testing.T) {
	// A duplicate entry that is ALSO missing fields must be reported as
	// a duplicate, not as malformed.
	doc := &document.Document{
		Type: "mcq",
		Questions: []document.Entry{{
			Index:   1,
			Text:    "Known Question",
			Options: map[string]question.Option{},
		}},
	}
	idx := NewIndex([]string{"known question"})

	_, dups, bad := validateDocument(doc, idx, question.DefaultMaxTags)

	assert.Len(t, dups, 1)
	assert.Empty(t, bad)
}

func TestValidateDocument_NeitherTextNorImage(t *testing.T) {
	doc := &document.Document{
		Type: "mcq",
		Questions: []document.Entry{{
			Index:   1,
			Options: map[string]question.Option{},
		}},
	}

	recs, _, bad := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	assert.Empty(t, recs)
	require.Len(t, bad, 1)
	assert.Equal(t, "question has neither text nor image", bad[0].Reason)
}

func TestValidateDocument_ImageOnlyQuestionAccepted(t *testing.T) {
	entry := entryWithOptions(1, "")
	entry.ImageRef = "https://img.example/q.png"
	doc := &document.Document{Type: "mcq", Questions: []document.Entry{entry}}

	recs, dups, bad := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	require.Len(t, recs, 1)
	assert.Empty(t, dups)
	assert.Empty(t, bad)
	assert.Equal(t, "https://img.example/q.png", recs[0].Record.ImageRef)
}

func TestValidateDocument_MissingFieldsReportedTogether(t *testing.T) {
	doc := &document.Document{
		Type: "mcq",
		Questions: []document.Entry{{
			Index: 1,
			Text:  "Partial entry",
			Options: map[string]question.Option{
				"A": {Text: "only option"},
				"C": {Text: "another"},
			},
		}},
	}

	_, _, bad := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	require.Len(t, bad, 1)
	assert.Equal(t, "missing required fields: B, D, answer", bad[0].Reason)
}

func TestValidateDocument_EmptyOptionRejectsEntry(t *testing.T) {
	entry := entryWithOptions(1, "Entry with hollow option")
	entry.Options["C"] = question.Option{}

	doc := &document.Document{Type: "mcq", Questions: []document.Entry{entry}}

	recs, _, bad := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	assert.Empty(t, recs, "no partial record may survive")
	require.Len(t, bad, 1)
	assert.Equal(t, "option C has neither text nor image", bad[0].Reason)
}

func TestValidateDocument_ImageOnlyOptionAccepted(t *testing.T) {
	entry := entryWithOptions(1, "Entry with image option")
	entry.Options["B"] = question.Option{ImageRef: "https://img.example/b.png"}

	doc := &document.Document{Type: "mcq", Questions: []document.Entry{entry}}

	recs, _, bad := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	require.Len(t, recs, 1)
	assert.Empty(t, bad)
	assert.Equal(t, "https://img.example/b.png", recs[0].Record.Options[1].ImageRef)
}

func TestValidateDocument_TagsTruncatedNotRejected(t *testing.T) {
	entry := entryWithOptions(1, "Heavily tagged")
	entry.Tags = []string{"t1", "t2", "t3", "t4", "t5", "t6"}

	doc := &document.Document{Type: "mcq", Questions: []document.Entry{entry}}

	recs, _, bad := validateDocument(doc, NewIndex(), 4)

	assert.Empty(t, bad, "overlong tags are a warning, not a rejection")
	require.Len(t, recs, 1)
	assert.Equal(t, []string{"t1", "t2", "t3", "t4"}, recs[0].Record.Tags)
}

func TestValidateDocument_RejectedEntriesDoNotPoisonIndex(t *testing.T) {
	doc := &document.Document{
		Type: "mcq",
		Questions: []document.Entry{
			{
				Index:   1,
				Text:    "Rejected entry",
				Options: map[string]question.Option{},
			},
			entryWithOptions(2, "Rejected entry"),
		},
	}

	recs, dups, bad := validateDocument(doc, NewIndex(), question.DefaultMaxTags)

	// The first entry is malformed and never staged, so the second,
	// well-formed use of the same text goes through.
	require.Len(t, bad, 1)
	assert.Empty(t, dups)
	require.Len(t, recs, 1)
	assert.Equal(t, 2, recs[0].Index)
}
