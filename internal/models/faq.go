package models

// FAQEntry maps a key to its synonym list and per-language canonical
// responses. Entries are static, loaded at startup, read-only afterwards.
type FAQEntry struct {
	Key       string            `json:"key"`
	Synonyms  []string          `json:"synonyms"`
	Responses map[string]string `json:"responses"`
}

// Response returns the canonical text for lang, falling back to French when
// the requested language has no entry.
func (e FAQEntry) Response(lang string) string {
	if text, ok := e.Responses[lang]; ok {
		return text
	}
	return e.Responses["fr"]
}

// RecommendationItem is one catalog entry for the semantic recommender.
// The embedding is computed once at startup and never refreshed.
type RecommendationItem struct {
	Title       string    `json:"title"`
	Category    string    `json:"type"`
	Description string    `json:"description"`
	Embedding   []float64 `json:"-"`
}

// EmbeddingText is the text the item is embedded under.
func (i RecommendationItem) EmbeddingText() string {
	return i.Title + " - " + i.Description
}
