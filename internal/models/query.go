package models

// Mode is the binary verbosity style of an answer.
type Mode string

const (
	ModeBrief    Mode = "brief"
	ModeDetailed Mode = "detailed"
)

// ParseMode maps the inbound response_type values onto a Mode.
// Anything unrecognized defaults to brief.
func ParseMode(responseType string) Mode {
	switch responseType {
	case "detailed", "detail", "full":
		return ModeDetailed
	default:
		return ModeBrief
	}
}

// SupportedLangs is the closed set of language codes the localized
// templates and FAQ branches cover. "es" is accepted on input (the speech
// adapter knows it) but has no template branch and falls back like any
// unrecognized code.
var SupportedLangs = []string{"fr", "en", "de", "ar", "ja", "zh"}

// NormalizeLang returns lang if supported, otherwise the default "fr".
func NormalizeLang(lang string) string {
	for _, l := range SupportedLangs {
		if l == lang {
			return lang
		}
	}
	return "fr"
}

// Query carries one user request through the pipeline. Immutable once built.
type Query struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Lang       string `json:"lang"`
	Mode       Mode   `json:"mode"`
}
