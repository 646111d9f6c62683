package parseintent

import (
	"fmt"
	"regexp"
	"strings"

	"fairbot/internal/models"
)

// fastRule maps a regex over normalized text to a fixed intent. Rules are
// tried in order; the first match wins, with no backtracking across rules.
type fastRule struct {
	pattern *regexp.Regexp
	intent  string
}

var fastRules = []fastRule{
	{regexp.MustCompile(`(quand|quelle date).*(commence|debut).*(programme|foire)`), models.IntentManualFoireStart},
	{regexp.MustCompile(`(quand|quelle date).*(termine|fin).*(programme|foire)`), models.IntentManualFoireEnd},
	{regexp.MustCompile(`(combien de jours|duree du programme|jusqu a quand|periode)`), models.IntentManualDureeGlobale},
	{regexp.MustCompile(`(horaire|quelle heure|heures douverture|heure.*commence|heure.*termine)`), models.IntentManualHorairesEvenements},
	{regexp.MustCompile(`(ou.*lieu|stands|salle|endroit|lieux.*evenement)`), models.IntentManualLieuxEvenements},
	{regexp.MustCompile(`(combien).*(editeurs|maisons d'edition|participants)`), models.IntentManualNbEditeurs},
}

// datePattern recognizes a day+month token ("le 2 mai", "02 Mai 2023").
var datePattern = regexp.MustCompile(`\b(\d{1,2})\s*(avril|mai)(?:\s*2023)?\b`)

// keywordRules are plain substring fallbacks tried after the regex rules.
var keywordRules = []struct {
	phrases []string
	intent  string
}{
	{[]string{"toutes les dates", "dates disponibles"}, models.IntentAllProgrammes},
	{[]string{"programme enfant", "programme pour les enfants"}, models.IntentProgrammeEnfant},
	{[]string{"editeurs", "maison d'edition", "editeur"}, models.IntentEditorsCount},
	{[]string{"stand", "hall", "lieu", "salle"}, models.IntentLocations},
}

// matchFastRules runs the ordered regex rules over normalized text. A
// recognized date token yields programme_by_date with the date entity
// normalized to "DD Month YYYY" (two-digit day, capitalized month).
func matchFastRules(normalized string) (models.IntentResult, bool) {
	for _, rule := range fastRules {
		if rule.pattern.MatchString(normalized) {
			return models.IntentResult{
				Intent:     rule.intent,
				Confidence: 1.0,
				Source:     "fast_path",
			}, true
		}
	}

	if m := datePattern.FindStringSubmatch(normalized); m != nil {
		day, month := m[1], m[2]
		if len(day) == 1 {
			day = "0" + day
		}
		month = strings.ToUpper(month[:1]) + month[1:]
		date := fmt.Sprintf("%s %s 2023", day, month)
		return models.IntentResult{
			Intent:     models.IntentProgrammeByDate,
			Confidence: 1.0,
			Entities:   map[string]string{models.EntityDate: date},
			Source:     "fast_path",
		}, true
	}

	return models.IntentResult{}, false
}

// matchKeywords is the loose substring tier, tried after the manual
// overrides so a broad keyword like "editeur" cannot shadow them.
func matchKeywords(normalized string) (models.IntentResult, bool) {
	for _, rule := range keywordRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(normalized, phrase) {
				return models.IntentResult{
					Intent:     rule.intent,
					Confidence: 1.0,
					Source:     "fast_path",
				}, true
			}
		}
	}
	return models.IntentResult{}, false
}

// EncodeDateIntent renders the wire convention for a fast-path date match.
func EncodeDateIntent(date string) string {
	return models.IntentProgrammeByDate + "::" + date
}

// DecodeDateIntent parses the "programme_by_date::<DD> <Month> <YYYY>"
// convention, returning the date entity.
func DecodeDateIntent(encoded string) (string, bool) {
	prefix := models.IntentProgrammeByDate + "::"
	if !strings.HasPrefix(encoded, prefix) {
		return "", false
	}
	return encoded[len(prefix):], true
}

// manualOverrides pre-empt the classifier for high-value phrase patterns.
// New overrides are appended here; classifier internals stay untouched.
var manualOverrides = []struct {
	matches    func(normalized string) bool
	intent     string
	confidence float64
}{
	{
		matches: func(n string) bool {
			return strings.Contains(n, "combien") && strings.Contains(n, "editeur")
		},
		intent:     models.IntentEditorsCount,
		confidence: 0.99,
	},
}

func matchOverride(normalized string) (models.IntentResult, bool) {
	for _, ov := range manualOverrides {
		if ov.matches(normalized) {
			return models.IntentResult{
				Intent:     ov.intent,
				Confidence: ov.confidence,
				Source:     "override",
			}, true
		}
	}
	return models.IntentResult{}, false
}
