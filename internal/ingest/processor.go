package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"qbank/internal/document"
	"qbank/internal/question"
	"qbank/internal/sheet"
	"qbank/internal/store"
)

// Processor runs document ingestions against a spreadsheet/database
// pair. Stores are opened at the start of each document and closed when
// it finishes; a Processor holds no open resources between calls.
type Processor struct {
	sheetPath string
	dbPath    string
	maxTags   int
	policy    DuplicatePolicy
	decide    DecisionFunc
	tokens    RunTokenGenerator
}

// Option configures a Processor.
type Option func(*Processor)

// WithPolicy sets the duplicate policy. Default is PolicyAsk.
func WithPolicy(policy DuplicatePolicy) Option {
	return func(p *Processor) {
		p.policy = policy
	}
}

// WithDecisionFunc sets the confirmation callback used under
// PolicyAsk. With no DecisionFunc configured, PolicyAsk degrades to
// PolicySkip so non-interactive callers never block.
func WithDecisionFunc(decide DecisionFunc) Option {
	return func(p *Processor) {
		p.decide = decide
	}
}

// WithRunTokens replaces the run token generator. Tests use
// NewFixedGenerator for deterministic results.
func WithRunTokens(gen RunTokenGenerator) Option {
	return func(p *Processor) {
		p.tokens = gen
	}
}

// New creates a Processor for the given store paths and tag bound.
func New(sheetPath, dbPath string, maxTags int, opts ...Option) *Processor {
	p := &Processor{
		sheetPath: sheetPath,
		dbPath:    dbPath,
		maxTags:   maxTags,
		policy:    PolicyAsk,
		tokens:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessDocument ingests a single YAML document into both stores.
//
// The phases run strictly in order: load, validate and deduplicate
// (staging records in memory), duplicate decision gate, commit
// (relational insert then spreadsheet mirror, per record), finalize
// (workbook saved once, totals read back). Failures before the commit
// phase - including a declined confirmation, reported as ErrDeclined -
// leave both stores untouched.
//
// The returned Result is meaningful even on error: its State says
// whether anything was persisted.
func (p *Processor) ProcessDocument(ctx context.Context, path string) (Result, error) {
	res := Result{
		RunToken: p.tokens.Generate(),
		Path:     path,
		State:    StateAborted,
	}

	slog.Info("processing document", "run", res.RunToken, "path", path)

	doc, err := document.Load(path)
	if err != nil {
		return res, err
	}
	res.Type = doc.Type
	res.Year = doc.Year
	res.Total = len(doc.Questions)

	slog.Debug("document loaded",
		"run", res.RunToken,
		"type", doc.Type,
		"year", doc.Year,
		"questions", len(doc.Questions),
	)

	st, err := store.Open(p.dbPath, p.maxTags)
	if err != nil {
		return res, fmt.Errorf("open database: %w", err)
	}
	defer st.Close()

	sh, err := sheet.Open(p.sheetPath, p.maxTags)
	if err != nil {
		return res, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer sh.Close()

	if err := p.run(ctx, doc, st, sh, &res); err != nil {
		return res, err
	}
	return res, nil
}

// run executes the staged pipeline against already-open stores.
func (p *Processor) run(ctx context.Context, doc *document.Document, rs RelationalStore, ss SheetStore, res *Result) error {
	storeTexts, err := rs.QuestionTexts(ctx)
	if err != nil {
		return fmt.Errorf("read stored questions: %w", err)
	}
	sheetTexts, err := ss.QuestionTexts()
	if err != nil {
		return fmt.Errorf("read spreadsheet questions: %w", err)
	}
	idx := NewIndex(storeTexts, sheetTexts)

	slog.Debug("duplicate index built", "run", res.RunToken, "known", idx.Len())

	recs, dups, bad := validateDocument(doc, idx, p.maxTags)
	res.Duplicates = dups
	res.Malformed = bad

	for _, m := range bad {
		slog.Warn("entry rejected",
			"run", res.RunToken,
			"question", m.Index,
			"reason", m.Reason,
		)
	}

	// Decision gate. Runs before any write so declining changes nothing.
	if len(dups) > 0 && p.policy == PolicyAsk && p.decide != nil {
		if !p.decide(dups) {
			slog.Info("ingestion declined", "run", res.RunToken, "duplicates", len(dups))
			return ErrDeclined
		}
	}

	// Commit phase: relational row first, then the spreadsheet mirror.
	// The workbook itself is only saved in the finalize step below, so
	// the window where the two stores disagree is one unsaved workbook.
	for _, rec := range recs {
		inserted, err := rs.InsertQuestion(ctx, rec.Record)
		if err != nil {
			return fmt.Errorf("insert question %s: %w", rec.Record.ID, err)
		}

		if !inserted {
			if err := p.classifyConflict(ctx, rs, rec, res); err != nil {
				return err
			}
			continue
		}

		if err := ss.AppendQuestion(rec.Record); err != nil {
			return fmt.Errorf("append question %s to spreadsheet: %w", rec.Record.ID, err)
		}
		res.Accepted++
	}

	// Finalize: one workbook save, then read back both totals.
	if err := ss.Save(); err != nil {
		return fmt.Errorf("save spreadsheet: %w", err)
	}

	if res.StoreTotal, err = rs.Count(ctx); err != nil {
		return fmt.Errorf("count stored questions: %w", err)
	}
	if res.SheetTotal, err = ss.Count(); err != nil {
		return fmt.Errorf("count spreadsheet questions: %w", err)
	}

	res.State = StateCommitted

	slog.Info("document committed",
		"run", res.RunToken,
		"accepted", res.Accepted,
		"duplicates", len(res.Duplicates),
		"malformed", len(res.Malformed),
		"collisions", res.Collisions,
		"store_total", res.StoreTotal,
		"sheet_total", res.SheetTotal,
	)

	return nil
}

// classifyConflict decides what an identifier conflict means. The text
// of the existing row is read back: same normalized text is a late
// duplicate (typically an image-only question, which the text index
// cannot see), different text is a prefix collision and the record is
// counted as such - renaming the question is the way out.
func (p *Processor) classifyConflict(ctx context.Context, rs RelationalStore, rec staged, res *Result) error {
	existing, ok, err := rs.QuestionTextByID(ctx, rec.Record.ID)
	if err != nil {
		return fmt.Errorf("inspect conflicting question %s: %w", rec.Record.ID, err)
	}
	if !ok {
		// Row vanished between insert and read; treat as collision.
		res.Collisions++
		return nil
	}

	if question.Normalize(existing) == question.Normalize(rec.Record.Text) {
		slog.Debug("identifier already stored, skipping",
			"run", res.RunToken,
			"question", rec.Index,
			"id", rec.Record.ID,
		)
		res.Duplicates = append(res.Duplicates, Duplicate{Index: rec.Index, Text: rec.Record.Text})
		return nil
	}

	slog.Error("identifier collision",
		"run", res.RunToken,
		"question", rec.Index,
		"id", rec.Record.ID,
		"stored_text", existing,
		"incoming_text", rec.Record.Text,
	)
	res.Collisions++
	return nil
}
