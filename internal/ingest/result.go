package ingest

import "errors"

// ErrDeclined is returned by ProcessDocument when the duplicate
// confirmation was answered with anything other than yes. Nothing has
// been written when this error is returned.
var ErrDeclined = errors.New("duplicate confirmation declined")

// State is the terminal state of one document ingestion.
type State string

const (
	// StateCommitted means the write phase ran and the workbook was saved.
	StateCommitted State = "committed"

	// StateAborted means the document produced no persisted changes.
	StateAborted State = "aborted"
)

// Duplicate identifies a rejected entry whose question text is already
// present in one of the stores or earlier in the same run.
type Duplicate struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Malformed identifies an entry rejected by validation, with the reason
// a reader can act on.
type Malformed struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Result reports what one document ingestion did.
type Result struct {
	RunToken string `json:"run_token"`
	Path     string `json:"path"`
	Type     string `json:"type,omitempty"`
	Year     string `json:"year,omitempty"`

	// Total is the number of entries the document carried.
	Total int `json:"total"`

	// Accepted is the number of records written to both stores.
	Accepted int `json:"accepted"`

	// Duplicates and Malformed list the rejected entries.
	Duplicates []Duplicate `json:"duplicates,omitempty"`
	Malformed  []Malformed `json:"malformed,omitempty"`

	// Collisions counts identifier conflicts whose stored text differs
	// from the incoming one. These are distinct from duplicates: the
	// record was NOT ingested and renaming the question resolves it.
	Collisions int `json:"collisions"`

	// SheetTotal and StoreTotal are the store sizes after commit.
	SheetTotal int `json:"sheet_total"`
	StoreTotal int `json:"store_total"`

	State State `json:"state"`
}

// Skipped returns the number of entries that did not reach the stores.
func (r Result) Skipped() int {
	return len(r.Duplicates) + len(r.Malformed) + r.Collisions
}

// DuplicatePolicy controls what happens when staged entries collide
// with already-stored question texts.
type DuplicatePolicy int

const (
	// PolicyAsk defers to the DecisionFunc before committing anything.
	PolicyAsk DuplicatePolicy = iota

	// PolicySkip proceeds without asking; duplicates are dropped.
	PolicySkip

	// PolicyOverwrite proceeds without asking. Stored rows are never
	// rewritten (records have no update lifecycle), so at the store
	// level this behaves like PolicySkip; the distinction exists for
	// callers that treat pre-authorization and skipping differently.
	PolicyOverwrite
)

// DecisionFunc answers whether ingestion should continue after
// duplicates were found. It runs before any write: returning false
// leaves both stores untouched.
type DecisionFunc func(dups []Duplicate) bool
