package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fairbot/internal/mapviz"
	"fairbot/internal/models"
	"fairbot/internal/store"
)

// canonicalIntent folds the fast-path manual intents onto the intents
// the handlers implement.
func canonicalIntent(intent string) string {
	switch intent {
	case models.IntentManualFoireStart, models.IntentManualFoireEnd:
		return models.IntentWhen
	case models.IntentManualDureeGlobale:
		return models.IntentDatesRange
	case models.IntentManualHorairesEvenements:
		return models.IntentHours
	case models.IntentManualLieuxEvenements:
		return models.IntentLocations
	case models.IntentManualNbEditeurs:
		return models.IntentEditorsCount
	default:
		return intent
	}
}

// handleFixed answers the closed intent vocabulary. Unrecognized labels
// fall through to the corrected-echo answer so an out-of-vocabulary
// classifier label cannot fail the request.
func (e *Engine) handleFixed(ctx context.Context, intent string, res models.IntentResult, mode models.Mode) (models.Answer, error) {
	detailed := mode == models.ModeDetailed

	switch canonicalIntent(intent) {
	case models.IntentWhen, models.IntentWhenDetailed:
		summary := fmt.Sprintf("La foire commence le %s et se termine le %s.", e.startDate, e.endDate)
		if intent == models.IntentWhenDetailed || detailed {
			return models.NormalizeAnswer(summary, fmt.Sprintf(
				"La Foire Internationale de Tunis débutera le %s et prendra fin le %s. "+
					"Ces dates couvrent l'ensemble des programmes pour enfants et adultes.",
				e.startDate, e.endDate,
			)), nil
		}
		return models.NormalizeAnswer(summary, fmt.Sprintf("Période officielle : du %s au %s.", e.startDate, e.endDate)), nil

	case models.IntentDuration:
		return e.answerDuration(ctx)

	case models.IntentDurationDetailed:
		return models.NormalizeAnswer(
			"Durée moyenne des événements",
			"30 minutes pour les présentations rapides\n"+
				"1 heure pour les sessions classiques\n"+
				"2 heures pour les grandes cérémonies et hommages",
		), nil

	case models.IntentProgrammeByDate, models.IntentProgrammeByDateDetailed:
		date := res.Entity(models.EntityDate)
		if date == "" {
			date = e.startDate
		}
		return e.answerProgrammeByDate(ctx, date, intent == models.IntentProgrammeByDateDetailed || detailed)

	case models.IntentProgrammeEnfant:
		return e.answerProgrammeEnfant(ctx, false)

	case models.IntentProgrammeEnfantDetailed:
		return e.answerProgrammeEnfant(ctx, true)

	case models.IntentAllProgrammes:
		return e.answerAllProgrammes(ctx)

	case models.IntentLocations, models.IntentLocationsDetailed:
		summary := "Il y aura 4 stands différents pour accueillir les événements : " +
			"Salles de Baghdad, Babel, Dejla & Forat et Convention du Ministère de la Culture."
		if intent == models.IntentLocationsDetailed || detailed {
			return models.NormalizeAnswer(summary,
				"Salle Dejla et Forat\nSalle Babel\nSalle Baghdad\nConvention du Ministère de la Culture"), nil
		}
		return models.NormalizeAnswer(summary, ""), nil

	case models.IntentHours, models.IntentHoursDetailed:
		summary := "Chaque jour, les événements commencent à 9h du matin et se terminent à 18h."
		if intent == models.IntentHoursDetailed || detailed {
			return models.NormalizeAnswer(summary,
				"Certaines activités spéciales peuvent se prolonger après 18h, "+
					"notamment les cérémonies d'ouverture et de clôture."), nil
		}
		return models.NormalizeAnswer(summary, ""), nil

	case models.IntentEditorsCount, models.IntentEditorsCountDetailed:
		return e.answerEditorsCount(ctx)

	case models.IntentEditorsCountries:
		var lines []string
		for _, country := range mapviz.CountryNames() {
			lines = append(lines, "- "+country)
		}
		return models.NormalizeAnswer("Origine des éditeurs", strings.Join(lines, "\n")), nil

	case models.IntentPrice, models.IntentPriceDetailed:
		return e.answerPrice(res, intent == models.IntentPriceDetailed || detailed), nil

	case models.IntentDatesRange:
		return models.NormalizeAnswer(
			fmt.Sprintf("10 jours, commence le %s et termine le %s.", dayMonth(e.startDate), dayMonth(e.endDate)),
			"",
		), nil

	case models.IntentDatesRangeDetailed:
		return e.answerDatesRangeDetailed(ctx)

	default:
		return e.correctedEcho(res.Entity(models.EntityUserInput), mode), nil
	}
}

func (e *Engine) answerDuration(ctx context.Context) (models.Answer, error) {
	dates, err := e.mergedDates(ctx)
	if err != nil {
		return models.Answer{}, err
	}
	if len(dates) == 0 {
		return models.NormalizeAnswer("Aucune date trouvée dans les programmes.", ""), nil
	}
	return models.NormalizeAnswer(fmt.Sprintf(
		"Le programme global se déroulera du %s au %s.",
		dayMonth(dates[0]), dayMonth(dates[len(dates)-1]),
	), ""), nil
}

func (e *Engine) answerProgrammeByDate(ctx context.Context, date string, detailed bool) (models.Answer, error) {
	sessions, err := e.mergedSessions(ctx, date)
	if err != nil {
		return models.Answer{}, err
	}
	if len(sessions) == 0 {
		return models.NormalizeAnswer(fmt.Sprintf("Aucun événement trouvé pour le %s.", date), ""), nil
	}

	var lines []string
	for _, s := range sessions {
		lines = append(lines, fmt.Sprintf("- %s – %s — %s dans %s", s.Audience, s.Title, s.Time, s.Room))
	}
	summary := fmt.Sprintf("Événements du %s :", date)
	brief := summary + "\n" + strings.Join(lines, "\n")

	if !detailed {
		return models.NormalizeAnswer(summary, brief), nil
	}

	var detail []string
	for _, s := range sessions {
		detail = append(detail, fmt.Sprintf("%s — %s — %s — %s — %s", date, s.Time, s.Title, s.Room, s.Audience))
	}
	return models.NormalizeAnswer(summary, strings.Join(detail, "\n")), nil
}

func (e *Engine) answerProgrammeEnfant(ctx context.Context, detailed bool) (models.Answer, error) {
	docs, err := e.store.All(ctx, store.CollectionChildren)
	if err != nil {
		return models.Answer{}, err
	}
	if len(docs) == 0 {
		return models.NormalizeAnswer("Aucun événement pour enfants trouvé.", ""), nil
	}

	sessions := make([]models.Session, 0, len(docs))
	for _, doc := range docs {
		if s, ok := models.SessionFromDocument(doc, models.AudienceChildren); ok {
			sessions = append(sessions, s)
		}
	}

	// Unique titles, alphabetical, for the brief enumeration.
	seen := make(map[string]bool)
	var titles []string
	for _, s := range sessions {
		if !seen[s.Title] {
			seen[s.Title] = true
			titles = append(titles, s.Title)
		}
	}
	sort.Strings(titles)
	summary := "Activités enfants prévues :\n- " + strings.Join(titles, "\n- ")

	if !detailed {
		return models.NormalizeAnswer(summary, ""), nil
	}

	var detail []string
	for _, s := range sessions {
		detail = append(detail, fmt.Sprintf("%s — %s — %s — %s", s.Date, s.Time, s.Title, s.Room))
	}
	return models.NormalizeAnswer(summary, strings.Join(detail, "\n")), nil
}

func (e *Engine) answerAllProgrammes(ctx context.Context) (models.Answer, error) {
	dates, err := e.mergedDates(ctx)
	if err != nil {
		return models.Answer{}, err
	}
	if len(dates) == 0 {
		return models.NormalizeAnswer("Aucune date trouvée dans les programmes.", ""), nil
	}
	return models.NormalizeAnswer(
		"Dates couvertes par les programmes :\n- "+strings.Join(dates, "\n- "),
		"",
	), nil
}

func (e *Engine) answerEditorsCount(ctx context.Context) (models.Answer, error) {
	exhibitors, err := e.store.Exhibitors(ctx)
	if err != nil {
		return models.Answer{}, err
	}

	summary := "Plus de 200 éditeurs de plusieurs pays seront présents."
	lines := []string{
		"Ils représenteront un large éventail d'ouvrages : littérature, sciences, jeunesse, et publications techniques.",
	}
	if len(exhibitors) > 0 {
		lines = append(lines, "Exemples d'éditeurs présents :")
		for i, ex := range exhibitors {
			if i == 5 {
				break
			}
			lines = append(lines, fmt.Sprintf("- %s → %s (Stand %d)", ex.Country, ex.Name, ex.Stand))
		}
	}
	return models.NormalizeAnswer(summary, strings.Join(lines, "\n")), nil
}

func (e *Engine) answerPrice(res models.IntentResult, detailed bool) models.Answer {
	question := strings.ToLower(res.Entity(models.EntityUserInput))

	if strings.Contains(question, "concert") {
		if detailed {
			return models.NormalizeAnswer(
				"Le tarif pour assister au concert est fixé à 20 TND par personne.",
				"Le tarif pour assister au concert est fixé à 20 TND par personne. "+
					"Il est recommandé d'acheter vos billets à l'avance car les places sont limitées.",
			)
		}
		return models.NormalizeAnswer("Le prix du concert est de 20 TND.", "")
	}
	if strings.Contains(question, "atelier") {
		if detailed {
			return models.NormalizeAnswer(
				"La participation à l'atelier coûte 15 TND.",
				"La participation à l'atelier coûte 15 TND. Ce tarif inclut le matériel de base fourni sur place.",
			)
		}
		return models.NormalizeAnswer("Le prix de l'atelier est de 15 TND.", "")
	}

	summary := "Les prix sont : Adulte 10 TND, Enfant 5 TND, Étudiant 7 TND."
	if detailed {
		return models.NormalizeAnswer(summary,
			"Les tarifs d'entrée sont organisés en plusieurs catégories :\n"+
				"- Adulte : 10 TND\n"+
				"- Enfant : 5 TND\n"+
				"- Étudiant : 7 TND\n"+
				"Les billets peuvent être achetés directement à la Maison de la Foire ou via notre site officiel. "+
				"Certains événements spéciaux peuvent avoir des tarifs différents (exemple : concerts ou ateliers).")
	}
	return models.NormalizeAnswer(summary, "")
}

func (e *Engine) answerDatesRangeDetailed(ctx context.Context) (models.Answer, error) {
	dates, err := e.mergedDates(ctx)
	if err != nil {
		return models.Answer{}, err
	}
	if len(dates) == 0 {
		return models.NormalizeAnswer("Aucune date trouvée", ""), nil
	}

	summary := fmt.Sprintf("%d jours, commence le %s et termine le %s", len(dates), dates[0], dates[len(dates)-1])

	var lines []string
	for _, date := range dates {
		sessions, err := e.mergedSessions(ctx, date)
		if err != nil {
			return models.Answer{}, err
		}
		lines = append(lines, date+" :")
		for _, s := range sessions {
			lines = append(lines, fmt.Sprintf("- %s — %s — %s — %s", s.Time, s.Title, s.Room, s.Audience))
		}
	}
	return models.NormalizeAnswer(summary, strings.Join(lines, "\n")), nil
}

// mergedDates returns the distinct dates of both programme collections,
// chronological order.
func (e *Engine) mergedDates(ctx context.Context) ([]string, error) {
	general, err := e.store.DistinctDates(ctx, store.CollectionGeneral)
	if err != nil {
		return nil, err
	}
	children, err := e.store.DistinctDates(ctx, store.CollectionChildren)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var merged []string
	for _, d := range append(general, children...) {
		if !seen[d] {
			seen[d] = true
			merged = append(merged, d)
		}
	}
	return store.SortDates(merged), nil
}

// mergedSessions returns the day's sessions, general records first, each
// tagged with its origin audience.
func (e *Engine) mergedSessions(ctx context.Context, date string) ([]models.Session, error) {
	general, err := e.store.FindByDate(ctx, store.CollectionGeneral, date)
	if err != nil {
		return nil, err
	}
	children, err := e.store.FindByDate(ctx, store.CollectionChildren, date)
	if err != nil {
		return nil, err
	}

	sessions := make([]models.Session, 0, len(general)+len(children))
	for _, doc := range general {
		if s, ok := models.SessionFromDocument(doc, models.AudienceGeneral); ok {
			sessions = append(sessions, s)
		}
	}
	for _, doc := range children {
		if s, ok := models.SessionFromDocument(doc, models.AudienceChildren); ok {
			sessions = append(sessions, s)
		}
	}
	return sessions, nil
}

// dayMonth strips the year off a "DD Month YYYY" date string.
func dayMonth(date string) string {
	fields := strings.Fields(date)
	if len(fields) >= 2 {
		return fields[0] + " " + fields[1]
	}
	return date
}
