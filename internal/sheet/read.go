package sheet

import (
	"fmt"

	"qbank/internal/question"
)

// Stats summarizes the workbook's data rows.
type Stats struct {
	Total      int            `json:"total"`
	WithImages int            `json:"with_images"`
	ByType     map[string]int `json:"by_type"`
}

// Count returns the number of data rows, excluding the header.
func (s *Sheet) Count() (int, error) {
	rows, err := s.dataRows()
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// QuestionTexts returns the question text of every data row, in row
// order. Rows with an empty question cell (image-only questions) are
// skipped. The ingest pipeline normalizes these into its duplicate
// index.
//
// Returns an empty slice (not nil) if the workbook holds no data rows.
func (s *Sheet) QuestionTexts() ([]string, error) {
	rows, err := s.dataRows()
	if err != nil {
		return nil, err
	}

	col := columnIndex(s.maxTags, "Question")

	texts := []string{}
	for _, row := range rows {
		if col < len(row) && row[col] != "" {
			texts = append(texts, row[col])
		}
	}
	return texts, nil
}

// Stats computes the row total, the number of rows carrying a question
// image, and the per-type breakdown.
func (s *Sheet) Stats() (Stats, error) {
	rows, err := s.dataRows()
	if err != nil {
		return Stats{}, err
	}

	imageCol := columnIndex(s.maxTags, "Question_Image_URL")
	typeCol := columnIndex(s.maxTags, "Type")

	stats := Stats{ByType: make(map[string]int)}
	for _, row := range rows {
		stats.Total++
		if imageCol < len(row) && row[imageCol] != "" {
			stats.WithImages++
		}
		if typeCol < len(row) && row[typeCol] != "" {
			stats.ByType[row[typeCol]]++
		}
	}
	return stats, nil
}

// dataRows returns every row after the header.
func (s *Sheet) dataRows() ([][]string, error) {
	rows, err := s.f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("read workbook rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// columnIndex returns the zero-based position of a header column.
func columnIndex(maxTags int, name string) int {
	for i, col := range question.Columns(maxTags) {
		if col == name {
			return i
		}
	}
	return -1
}
