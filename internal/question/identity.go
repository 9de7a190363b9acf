package question

import (
	"crypto/sha256"
	"encoding/hex"
)

// idLength is the hex length of a record identity. 12 hex characters
// (48 bits) keep IDs short enough for spreadsheet cells and shell use.
const idLength = 12

// GenerateID derives the stable identity for a record from its question
// text and batch metadata. The three fields are concatenated in fixed
// order, hashed with SHA-256, and truncated to a 12-character hex prefix.
//
// The same (text, type, year) triple always yields the same ID, which is
// what makes re-ingesting a document collide on the primary key instead
// of silently duplicating rows. Truncation trades global uniqueness for
// compactness: a prefix collision between records with different content
// is possible, so callers treating an ID conflict as "already ingested"
// should verify the stored text matches before concluding that.
func GenerateID(text, typ, year string) string {
	sum := sha256.Sum256([]byte(text + typ + year))
	return hex.EncodeToString(sum[:])[:idLength]
}
