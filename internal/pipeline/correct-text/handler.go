// Package correcttext cleans up synthesized answers before they reach
// the user: whitespace, capitalization after sentence stops, and bullet
// structure in detailed mode.
package correcttext

import (
	"regexp"
	"strings"

	"fairbot/internal/models"
)

var (
	spacesPattern    = regexp.MustCompile(`[ \t]+`)
	afterStopPattern = regexp.MustCompile(`([.!?])\s+([a-z])`)
)

// Format is pure and idempotent: formatting an already formatted text
// returns it unchanged.
func Format(text string, mode models.Mode) string {
	if text == "" {
		return ""
	}

	text = spacesPattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	text = afterStopPattern.ReplaceAllStringFunc(text, func(m string) string {
		sub := afterStopPattern.FindStringSubmatch(m)
		return sub[1] + " " + strings.ToUpper(sub[2])
	})

	if mode != models.ModeDetailed {
		return text
	}

	lines := strings.Split(text, "\n")
	structured := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "-") {
			line = "- " + line
		}
		structured = append(structured, line)
	}

	return strings.Join(structured, "\n")
}
