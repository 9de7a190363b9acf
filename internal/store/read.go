package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Stats summarizes the stored question bank.
type Stats struct {
	Total      int            `json:"total"`
	WithImages int            `json:"with_images"`
	ByType     map[string]int `json:"by_type"`
}

// Count returns the number of stored questions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// QuestionTexts returns the text of every stored question in insertion
// order. The ingest pipeline normalizes these into its duplicate index.
//
// Returns an empty slice (not nil) if no questions are stored.
func (s *Store) QuestionTexts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT question FROM questions ORDER BY rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query question texts: %w", err)
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scan question text: %w", err)
		}
		texts = append(texts, text)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate question texts: %w", err)
	}

	if texts == nil {
		texts = []string{}
	}

	return texts, nil
}

// QuestionTextByID returns the stored question text for the given ID.
// ok reports whether a row with that ID exists.
func (s *Store) QuestionTextByID(ctx context.Context, id string) (text string, ok bool, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT question FROM questions WHERE id = ?
	`, id).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query question by id: %w", err)
	}
	return text, true, nil
}

// Stats computes the question total, the number of questions carrying a
// question image, and the per-type breakdown.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{ByType: make(map[string]int)}

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&stats.Total)
	if err != nil {
		return Stats{}, fmt.Errorf("count questions: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM questions
		WHERE question_image_url IS NOT NULL AND question_image_url != ''
	`).Scan(&stats.WithImages)
	if err != nil {
		return Stats{}, fmt.Errorf("count image questions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COUNT(*) FROM questions GROUP BY type ORDER BY type ASC
	`)
	if err != nil {
		return Stats{}, fmt.Errorf("query type breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var typ string
		var n int
		if err := rows.Scan(&typ, &n); err != nil {
			return Stats{}, fmt.Errorf("scan type breakdown: %w", err)
		}
		stats.ByType[typ] = n
	}

	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate type breakdown: %w", err)
	}

	return stats, nil
}
