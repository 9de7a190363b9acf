package sheet

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/xuri/excelize/v2"

	"qbank/internal/question"
)

// DefaultSheetName is the worksheet title used for new workbooks.
const DefaultSheetName = "Questions"

var (
	// ErrNotFound indicates the workbook file does not exist.
	ErrNotFound = errors.New("spreadsheet not found")

	// ErrHeader indicates the workbook's header row does not match the
	// expected column contract.
	ErrHeader = errors.New("spreadsheet header mismatch")
)

// Sheet wraps an open workbook holding the spreadsheet copy of the
// question bank. All mutations stay in memory until Save.
type Sheet struct {
	f       *excelize.File
	sheet   string
	maxTags int
	nextRow int
}

// Create writes a new workbook at path containing only the header row.
// An existing file at path is replaced; callers gate overwrites.
func Create(path string, maxTags int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DefaultSheetName); err != nil {
		return fmt.Errorf("create workbook: %w", err)
	}

	header := toRow(question.Columns(maxTags))
	if err := f.SetSheetRow(DefaultSheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Open opens the workbook at path and validates its header row against
// the column contract for maxTags. The active worksheet is used, which
// for workbooks made by Create is the Questions sheet.
func Open(path string, maxTags int) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open workbook: %w", err)
	}

	name := f.GetSheetName(f.GetActiveSheetIndex())

	rows, err := f.GetRows(name)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read workbook rows: %w", err)
	}

	if err := checkHeader(rows, maxTags); err != nil {
		f.Close()
		return nil, err
	}

	return &Sheet{
		f:       f,
		sheet:   name,
		maxTags: maxTags,
		nextRow: len(rows) + 1,
	}, nil
}

// checkHeader compares the first row against the expected columns.
func checkHeader(rows [][]string, maxTags int) error {
	if len(rows) == 0 {
		return fmt.Errorf("%w: workbook has no header row", ErrHeader)
	}

	expected := question.Columns(maxTags)
	header := rows[0]
	if len(header) != len(expected) {
		return fmt.Errorf("%w: %d columns, expected %d", ErrHeader, len(header), len(expected))
	}
	for i, want := range expected {
		if header[i] != want {
			return fmt.Errorf("%w: column %d is %q, expected %q", ErrHeader, i+1, header[i], want)
		}
	}
	return nil
}

// AppendQuestion stages a record as the next data row. The workbook on
// disk is unchanged until Save.
func (s *Sheet) AppendQuestion(rec question.Record) error {
	cell, err := excelize.CoordinatesToCellName(1, s.nextRow)
	if err != nil {
		return fmt.Errorf("append question: %w", err)
	}

	row := toRow(rec.RowValues(s.maxTags))
	if err := s.f.SetSheetRow(s.sheet, cell, &row); err != nil {
		return fmt.Errorf("append question: %w", err)
	}

	s.nextRow++
	return nil
}

// Save writes the workbook back to its file.
func (s *Sheet) Save() error {
	if err := s.f.Save(); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Close releases the workbook without saving staged rows.
func (s *Sheet) Close() error {
	return s.f.Close()
}

// toRow converts string cells to the slice type SetSheetRow expects.
func toRow(values []string) []interface{} {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
