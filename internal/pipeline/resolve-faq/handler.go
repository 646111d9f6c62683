package resolvefaq

import (
	"context"
	"math/rand"
	"regexp"
	"strings"

	"fairbot/internal/common/logger"
	"fairbot/internal/models"
	normalizetext "fairbot/internal/pipeline/normalize-text"

	"github.com/sahilm/fuzzy"
)

const TaskType = "resolve-faq"

// Sources, from most to least specific tier.
const (
	SourceFAQ        = "faq"
	SourceContextual = "contextual"
	SourceFuzzy      = "fuzzy"
	SourceGeneric    = "generic"
)

type Input struct {
	Question string      `json:"question"`
	Lang     string      `json:"lang"`
	Mode     models.Mode `json:"mode"`
}

type Output struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched"`
	Key     string `json:"key,omitempty"`
	Source  string `json:"source"`
}

// synonymPatterns caches the whole-word matchers so Execute does not
// recompile them per request.
var synonymPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, entry := range faqDatabase {
		for _, syn := range entry.Synonyms {
			patterns[syn] = regexp.MustCompile(`\b` + regexp.QuoteMeta(syn) + `\b`)
		}
	}
	return patterns
}()

type Handler struct {
	rng    *rand.Rand
	logger logger.Logger
}

func NewHandler(rng *rand.Rand, log logger.Logger) *Handler {
	return &Handler{
		rng: rng,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute walks the fallback tiers in order: curated entries on
// whole-word synonym match, then contextual keywords on substring,
// then a fuzzy pass over the same keywords, then a generic answer.
// Matched is true only for the curated tier.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	question := normalizetext.Normalize(input.Question)
	lang := models.NormalizeLang(input.Lang)

	for _, entry := range faqDatabase {
		for _, syn := range entry.Synonyms {
			if synonymPatterns[syn].MatchString(question) {
				h.logger.Info("faq entry matched", map[string]interface{}{
					"key":     entry.Key,
					"synonym": syn,
				})
				return &Output{
					Text:    entry.Response(lang),
					Matched: true,
					Key:     entry.Key,
					Source:  SourceFAQ,
				}, nil
			}
		}
	}

	for _, fb := range contextualFallbacks {
		if strings.Contains(question, fb.Keyword) {
			return &Output{Text: fb.Response, Key: fb.Keyword, Source: SourceContextual}, nil
		}
	}

	if fb, ok := fuzzyContextual(question); ok {
		h.logger.Info("fuzzy contextual match", map[string]interface{}{
			"keyword": fb.Keyword,
		})
		return &Output{Text: fb.Response, Key: fb.Keyword, Source: SourceFuzzy}, nil
	}

	return &Output{Text: h.genericText(lang, input.Mode), Source: SourceGeneric}, nil
}

// fuzzyContextual tolerates misspellings of the contextual keywords,
// e.g. "edteur" still lands on "editeur". Short words are skipped to
// avoid accidental subsequence hits.
func fuzzyContextual(question string) (struct{ Keyword, Response string }, bool) {
	keywords := make([]string, len(contextualFallbacks))
	for i, fb := range contextualFallbacks {
		keywords[i] = fb.Keyword
	}

	for _, word := range strings.Fields(question) {
		if len(word) < 5 {
			continue
		}
		matches := fuzzy.Find(word, keywords)
		if len(matches) > 0 {
			return contextualFallbacks[matches[0].Index], true
		}
	}
	return struct{ Keyword, Response string }{}, false
}

func (h *Handler) genericText(lang string, mode models.Mode) string {
	if lang == "fr" {
		return genericMessages[h.rng.Intn(len(genericMessages))]
	}
	return FallbackText(lang, mode)
}

// FallbackText returns the localized generic answer for a language and
// verbosity mode, falling back to French.
func FallbackText(lang string, mode models.Mode) string {
	byMode, ok := fallbackTexts[lang]
	if !ok {
		byMode = fallbackTexts["fr"]
	}
	if text, ok := byMode[mode]; ok {
		return text
	}
	return byMode[models.ModeBrief]
}
