package question

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize produces the canonical dedup key for a question text:
// surrounding whitespace trimmed, lower-cased, then NFC-normalized so
// that visually identical strings with different code point sequences
// compare equal.
//
// Every duplicate check in the system goes through this function. Do not
// compare raw question texts directly.
func Normalize(s string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(s)))
}
