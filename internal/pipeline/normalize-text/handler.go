// Package normalizetext folds user text for matching: lowercase, accents
// stripped via Unicode canonical decomposition, sentence punctuation removed,
// whitespace collapsed. Every matching stage runs on this output.
package normalizetext

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	punctuation = regexp.MustCompile(`[?.!,:;]`)
	spaces      = regexp.MustCompile(`\s+`)

	// NFD decomposition followed by removal of combining marks ("é" -> "e").
	stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize is a pure, idempotent function: Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	text = strings.ToLower(text)
	if folded, _, err := transform.String(stripMarks, text); err == nil {
		text = folded
	}
	text = punctuation.ReplaceAllString(text, "")
	text = spaces.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
