package document

import "errors"

var (
	// ErrNotFound indicates the document path does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrSchema indicates the document violates the batch-level contract:
	// unparseable YAML, a missing type field, or an absent/empty question
	// list. Schema errors abort the document, never individual records.
	ErrSchema = errors.New("document schema violation")
)
