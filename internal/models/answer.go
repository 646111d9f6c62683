package models

import "strings"

const defaultAnswerText = "Aucune information disponible pour cette question."

// Answer is the canonical response shape produced by every handler.
// Both fields are always non-empty after Normalize.
type Answer struct {
	Summary string `json:"summary"`
	Details string `json:"details"`
}

// NormalizeAnswer forces the {summary, details} contract: summary falls back
// to a fixed default, details falls back to summary.
func NormalizeAnswer(summary, details string) Answer {
	summary = strings.TrimSpace(summary)
	if summary == "" {
		summary = defaultAnswerText
	}
	details = strings.TrimSpace(details)
	if details == "" {
		details = summary
	}
	return Answer{Summary: summary, Details: details}
}

// Normalize re-applies the contract to an already built Answer.
func (a Answer) Normalize() Answer {
	return NormalizeAnswer(a.Summary, a.Details)
}

// Response is the orchestrator's outbound contract.
type Response struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Answer     Answer  `json:"answer"`
}
