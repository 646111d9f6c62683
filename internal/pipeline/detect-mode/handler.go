// Package detectmode decides the verbosity of the answer from the phrasing
// of the question: explicit hints first, then length, then the interrogative
// form (factual questions default short).
package detectmode

import (
	"regexp"
	"strings"

	normalizetext "fairbot/internal/pipeline/normalize-text"

	"fairbot/internal/models"
)

var interrogative = regexp.MustCompile(`\b(quand|ou|combien|quel|quelle|est-ce que|who|when|where|which|how many)\b`)

// Detect returns the verbosity mode for a question.
func Detect(text string) models.Mode {
	if strings.TrimSpace(text) == "" {
		return models.ModeBrief
	}

	t := normalizetext.Normalize(text)

	for _, hint := range detailedHints {
		if strings.Contains(t, hint) {
			return models.ModeDetailed
		}
	}
	for _, hint := range briefHints {
		if strings.Contains(t, hint) {
			return models.ModeBrief
		}
	}

	wordCount := len(strings.Fields(t))
	if wordCount <= briefWordLimit {
		return models.ModeBrief
	}
	if wordCount >= detailedWordFloor {
		return models.ModeDetailed
	}

	if interrogative.MatchString(t) {
		return models.ModeBrief
	}

	return models.ModeDetailed
}
