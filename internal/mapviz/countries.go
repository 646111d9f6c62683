// Package mapviz prepares the exhibitor country data backing the map
// view: canonical country names, tallies, and correction of misspelled
// names coming from the datastore.
package mapviz

import (
	"context"

	"github.com/sahilm/fuzzy"

	"fairbot/internal/common/logger"
	normalizetext "fairbot/internal/pipeline/normalize-text"
	"fairbot/internal/store"
)

const UnknownCountry = "Inconnu"

// ValidCountries is the canonical list of exhibitor origin countries.
var ValidCountries = []string{
	"Tunisie", "Égypte", "Liban", "Iraq", "Iran", "Émirats Arabes Unis", "Syrie",
	"Koweït", "Jordanie", "Soudan", "Irlande", "Royaume d'Arabie Saoudite", "Algérie",
	"Palestine", "Mauritanie", "Maroc", "Yémen", "Russie", "Hongrie", "Amman",
	"Libye", "Sénégal", "Suède", "Qatar", "Turquie",
}

// CountryTally is one canonical country with its exhibitor count.
type CountryTally struct {
	Country string `json:"pays"`
	Count   int    `json:"count"`
}

type Builder struct {
	store  *store.EventStore
	logger logger.Logger
}

func NewBuilder(eventStore *store.EventStore, log logger.Logger) *Builder {
	return &Builder{
		store: eventStore,
		logger: log.With(map[string]interface{}{
			"component": "mapviz",
		}),
	}
}

// Tally counts exhibitors per canonical country, correcting misspelled
// names on the way. Unrecognizable names land in the Inconnu bucket.
// Order follows ValidCountries, Inconnu last, empty tallies omitted.
func (b *Builder) Tally(ctx context.Context) ([]CountryTally, error) {
	exhibitors, err := b.store.Exhibitors(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, ex := range exhibitors {
		country := CorrectCountry(ex.Country)
		if country == UnknownCountry {
			b.logger.Warn("unrecognized exhibitor country", map[string]interface{}{
				"pays":    ex.Country,
				"editeur": ex.Name,
			})
		}
		counts[country]++
	}

	tallies := make([]CountryTally, 0, len(counts))
	for _, country := range ValidCountries {
		if n := counts[country]; n > 0 {
			tallies = append(tallies, CountryTally{Country: country, Count: n})
		}
	}
	if n := counts[UnknownCountry]; n > 0 {
		tallies = append(tallies, CountryTally{Country: UnknownCountry, Count: n})
	}
	return tallies, nil
}

// foldedCountries caches the accent-folded form of each canonical name,
// index-aligned with ValidCountries.
var foldedCountries = func() []string {
	folded := make([]string, len(ValidCountries))
	for i, c := range ValidCountries {
		folded[i] = normalizetext.Normalize(c)
	}
	return folded
}()

// CorrectCountry maps a raw country name onto the canonical list.
// Matching is case and accent insensitive ("Egypte" resolves to
// "Égypte"); close misspellings are corrected by fuzzy matching;
// anything else is Inconnu.
func CorrectCountry(raw string) string {
	folded := normalizetext.Normalize(raw)
	if folded == "" {
		return UnknownCountry
	}

	for i, valid := range foldedCountries {
		if folded == valid {
			return ValidCountries[i]
		}
	}

	matches := fuzzy.Find(folded, foldedCountries)
	if len(matches) > 0 {
		return ValidCountries[matches[0].Index]
	}
	return UnknownCountry
}

// CountryNames lists the canonical countries as seen in the exhibitor
// collection, ValidCountries order.
func CountryNames() []string {
	names := make([]string, len(ValidCountries))
	copy(names, ValidCountries)
	return names
}
