package ingest

import (
	"context"

	"qbank/internal/question"
)

// RelationalStore is the slice of the SQLite store the pipeline needs.
// Satisfied by *store.Store.
type RelationalStore interface {
	QuestionTexts(ctx context.Context) ([]string, error)
	QuestionTextByID(ctx context.Context, id string) (text string, ok bool, err error)
	InsertQuestion(ctx context.Context, rec question.Record) (inserted bool, err error)
	Count(ctx context.Context) (int, error)
}

// SheetStore is the slice of the spreadsheet store the pipeline needs.
// Satisfied by *sheet.Sheet. AppendQuestion stages in memory; nothing
// reaches disk until Save.
type SheetStore interface {
	QuestionTexts() ([]string, error)
	AppendQuestion(rec question.Record) error
	Count() (int, error)
	Save() error
}
