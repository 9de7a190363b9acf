package ingest

import (
	"context"

	"qbank/internal/question"
)

// fakeRelational is an in-memory RelationalStore for exercising the
// commit path without SQLite.
type fakeRelational struct {
	rows    map[string]string // id -> stored question text
	order   []string
	inserts int
}

func newFakeRelational() *fakeRelational {
	return &fakeRelational{rows: make(map[string]string)}
}

func (f *fakeRelational) seed(id, text string) {
	f.rows[id] = text
	f.order = append(f.order, id)
}

func (f *fakeRelational) QuestionTexts(ctx context.Context) ([]string, error) {
	texts := []string{}
	for _, id := range f.order {
		if t := f.rows[id]; t != "" {
			texts = append(texts, t)
		}
	}
	return texts, nil
}

func (f *fakeRelational) QuestionTextByID(ctx context.Context, id string) (string, bool, error) {
	text, ok := f.rows[id]
	return text, ok, nil
}

func (f *fakeRelational) InsertQuestion(ctx context.Context, rec question.Record) (bool, error) {
	if _, exists := f.rows[rec.ID]; exists {
		return false, nil
	}
	f.rows[rec.ID] = rec.Text
	f.order = append(f.order, rec.ID)
	f.inserts++
	return true, nil
}

func (f *fakeRelational) Count(ctx context.Context) (int, error) {
	return len(f.rows), nil
}

// fakeSheet is an in-memory SheetStore. Rows appended before Save are
// staged; Save moves them into saved.
type fakeSheet struct {
	staged []question.Record
	saved  []question.Record
	seeded []string
}

func (f *fakeSheet) QuestionTexts() ([]string, error) {
	texts := append([]string{}, f.seeded...)
	for _, rec := range f.saved {
		if rec.Text != "" {
			texts = append(texts, rec.Text)
		}
	}
	for _, rec := range f.staged {
		if rec.Text != "" {
			texts = append(texts, rec.Text)
		}
	}
	return texts, nil
}

func (f *fakeSheet) AppendQuestion(rec question.Record) error {
	f.staged = append(f.staged, rec)
	return nil
}

func (f *fakeSheet) Count() (int, error) {
	return len(f.seeded) + len(f.saved) + len(f.staged), nil
}

func (f *fakeSheet) Save() error {
	f.saved = append(f.saved, f.staged...)
	f.staged = nil
	return nil
}
