package narrate

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"fairbot/internal/common/logger"
	"fairbot/internal/models"
	normalizetext "fairbot/internal/pipeline/normalize-text"
	"fairbot/internal/pipeline/recommend"
	resolvefaq "fairbot/internal/pipeline/resolve-faq"
	"fairbot/internal/store"
)

const TaskType = "narrate"

type Handler struct {
	store       *store.EventStore
	faq         *resolvefaq.Handler
	recommender *recommend.Handler
	defaultDate string
	rng         *rand.Rand
	logger      logger.Logger
}

func NewHandler(
	eventStore *store.EventStore,
	faq *resolvefaq.Handler,
	recommender *recommend.Handler,
	defaultDate string,
	rng *rand.Rand,
	log logger.Logger,
) *Handler {
	return &Handler{
		store:       eventStore,
		faq:         faq,
		recommender: recommender,
		defaultDate: defaultDate,
		rng:         rng,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute builds the narrative answer for a set of sessions. With zero
// sessions it degrades through the FAQ and recommendation tiers instead
// of narrating; it never answers with an empty text.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	date := input.Date
	if date == "" {
		date = h.defaultDate
	}

	sessions, err := h.resolveSessions(ctx, input, date)
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		return h.narrateEmpty(ctx, input), nil
	}

	intro := h.intro(input.Question, input.Lang, date, len(sessions))

	var sb strings.Builder
	sb.WriteString(intro)
	sb.WriteString("\n\n")
	for i, s := range sessions {
		writeSessionBlock(&sb, i+1, s, input.Mode)
	}

	if lines := h.recommendationLines(ctx, input.Question); len(lines) > 0 {
		sb.WriteString("\nRecommandations :\n")
		sb.WriteString(strings.Join(lines, "\n"))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(h.closing(input.Theme))

	return &Output{
		Answer:       models.NormalizeAnswer(intro, sb.String()),
		SessionCount: len(sessions),
	}, nil
}

func (h *Handler) resolveSessions(ctx context.Context, input *Input, date string) ([]models.Session, error) {
	src := input.Source
	switch src.kind {
	case sourceExplicit:
		return src.sessions, nil

	case sourceDocuments:
		sessions := make([]models.Session, 0, len(src.docs))
		for _, doc := range src.docs {
			if s, ok := models.SessionFromDocument(doc, src.audience); ok {
				sessions = append(sessions, s)
			}
		}
		return sessions, nil

	case sourceDeferred:
		general, err := h.store.FindByDate(ctx, store.CollectionGeneral, date)
		if err != nil {
			return nil, err
		}

		audience := ""
		if input.IncludeChildren {
			audience = models.AudienceGeneral
		}

		sessions := make([]models.Session, 0, len(general))
		for _, doc := range general {
			if s, ok := models.SessionFromDocument(doc, audience); ok {
				sessions = append(sessions, s)
			}
		}

		if input.IncludeChildren {
			children, err := h.store.FindByDate(ctx, store.CollectionChildren, date)
			if err != nil {
				return nil, err
			}
			for _, doc := range children {
				if s, ok := models.SessionFromDocument(doc, models.AudienceChildren); ok {
					sessions = append(sessions, s)
				}
			}
		}
		return sessions, nil
	}

	return nil, nil
}

// narrateEmpty is the zero-session path: localized no-info line, then
// whatever the FAQ tiers and the recommender can still contribute.
func (h *Handler) narrateEmpty(ctx context.Context, input *Input) *Output {
	summary := tr("no_info", input.Lang, "", 0)
	parts := []string{summary}

	faqOut, err := h.faq.Execute(ctx, &resolvefaq.Input{
		Question: input.Question,
		Lang:     input.Lang,
		Mode:     input.Mode,
	})
	if err == nil && faqOut.Source != resolvefaq.SourceGeneric && faqOut.Text != "" {
		parts = append(parts, faqOut.Text)
	}

	if lines := h.recommendationLines(ctx, input.Question); len(lines) > 0 {
		parts = append(parts, strings.Join(lines, "\n"))
	}

	return &Output{Answer: models.NormalizeAnswer(summary, strings.Join(parts, "\n\n"))}
}

// intro branches on the question wording: asking when things start gets
// the welcoming opening-day phrasing, anything else the neutral count.
func (h *Handler) intro(question, lang, date string, n int) string {
	normalized := normalizetext.Normalize(question)
	if strings.Contains(normalized, "commence") || strings.Contains(normalized, "debut") {
		return fmt.Sprintf(
			"Bonjour cher visiteur, la foire débute officiellement le %s, avec %d événement(s) au programme. Voici les détails du premier jour :",
			date, n,
		)
	}
	return tr("intro_programme", lang, date, n)
}

func writeSessionBlock(sb *strings.Builder, idx int, s models.Session, mode models.Mode) {
	fmt.Fprintf(sb, "Session %d : %s\n", idx, s.Title)
	fmt.Fprintf(sb, "Horaire : %s\n", s.Time)
	fmt.Fprintf(sb, "Directeur : %s\n", s.Host)
	fmt.Fprintf(sb, "Salle : %s\n", s.Room)
	fmt.Fprintf(sb, "Accès : %s\n", s.Access)
	if s.Audience != "" {
		fmt.Fprintf(sb, "Public : %s\n", s.Audience)
	}
	if mode == models.ModeDetailed && s.Description != "" {
		fmt.Fprintf(sb, "Description : %s\n", s.Description)
	}
	sb.WriteString("\n")
}

// recommendationLines returns the formatted recommendations, or the
// inline diagnostic note when the recommender reports an outage. A
// legitimate zero-match result stays empty.
func (h *Handler) recommendationLines(ctx context.Context, question string) []string {
	out, err := h.recommender.Execute(ctx, &recommend.Input{Question: question})
	if err != nil || out.Unavailable {
		fields := map[string]interface{}{}
		if err != nil {
			fields["error"] = err.Error()
		}
		h.logger.Warn("recommendations unavailable", fields)
		return []string{"Note : recommandations momentanément indisponibles."}
	}
	return out.Lines
}

func (h *Handler) closing(theme string) string {
	pool, ok := closingRemarks[theme]
	if !ok || len(pool) == 0 {
		pool = closingRemarks["general"]
	}
	return pool[h.rng.Intn(len(pool))]
}
