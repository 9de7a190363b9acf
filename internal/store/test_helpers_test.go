package store

import (
	"path/filepath"
	"testing"

	"qbank/internal/question"
)

// createTestStore creates a store backed by a temp file with the
// default tag bound.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, question.DefaultMaxTags)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a question record with minimal required fields.
func createTestRecord(id, text string) question.Record {
	return question.Record{
		ID:   id,
		Text: text,
		Options: [4]question.Option{
			{Text: "first"},
			{Text: "second"},
			{Text: "third"},
			{Text: "fourth"},
		},
		Answer: "A",
		Type:   "mcq",
		Year:   "2024",
		Tags:   []string{"algebra"},
	}
}
