package store

import (
	"context"
	"fmt"
	"strings"

	"qbank/internal/question"
)

// InsertQuestion inserts a question record into the store.
// Uses ON CONFLICT(id) DO NOTHING - when a row with the same derived ID
// already exists the statement is a no-op and inserted reports false.
//
// A false result does not say WHY the ID was taken. Callers that need
// to distinguish a re-ingested question from a hash prefix collision
// should read the stored text back with QuestionTextByID and compare.
func (s *Store) InsertQuestion(ctx context.Context, rec question.Record) (inserted bool, err error) {
	cols := question.Columns(s.maxTags)
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, col := range cols {
		names[i] = strings.ToLower(col)
		marks[i] = "?"
	}

	values := rec.RowValues(s.maxTags)
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO questions (`+strings.Join(names, ", ")+`)
		VALUES (`+strings.Join(marks, ", ")+`)
		ON CONFLICT(id) DO NOTHING
	`, args...)
	if err != nil {
		return false, fmt.Errorf("insert question: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert question: rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
