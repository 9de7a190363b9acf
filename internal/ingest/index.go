package ingest

import "qbank/internal/question"

// Index is the duplicate index for one ingestion run: the normalized
// question texts of everything already stored, union of both stores,
// plus whatever has been staged so far in this run. The in-memory adds
// are what catch duplicates within a single document.
//
// Image-only questions have no text and are invisible to the index;
// their duplicates surface later as identifier conflicts.
type Index struct {
	keys map[string]struct{}
}

// NewIndex builds an index from any number of raw text slices.
func NewIndex(sources ...[]string) *Index {
	ix := &Index{keys: make(map[string]struct{})}
	for _, texts := range sources {
		for _, text := range texts {
			ix.Add(text)
		}
	}
	return ix
}

// Contains reports whether a question with the same normalized text is
// already known. Empty text never matches.
func (ix *Index) Contains(text string) bool {
	key := question.Normalize(text)
	if key == "" {
		return false
	}
	_, ok := ix.keys[key]
	return ok
}

// Add records a question text. Empty text is ignored.
func (ix *Index) Add(text string) {
	key := question.Normalize(text)
	if key == "" {
		return
	}
	ix.keys[key] = struct{}{}
}

// Len returns the number of distinct normalized texts.
func (ix *Index) Len() int {
	return len(ix.keys)
}
