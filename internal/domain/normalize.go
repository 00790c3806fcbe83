package domain

import (
	"strings"
)

// wordPunctuation is the punctuation class stripped from saved words before
// they are stored or compared.
const wordPunctuation = ".,/#!$%^&*;:{}=-_`~()"

// NormalizeWord prepares a raw token for use as a vocabulary deduplication key:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - strips the fixed punctuation set
//
// Returns "" when nothing remains, which callers treat as "not a word".
// Diacritics and apostrophes are preserved.
func NormalizeWord(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	raw = strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if strings.ContainsRune(wordPunctuation, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
