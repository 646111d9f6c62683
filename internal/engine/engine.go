// Package engine orchestrates the answer pipeline: intent resolution,
// storytelling or fixed-intent handling, then the corrected-echo
// fallback. Whatever happens inside, Answer returns a well-formed
// response; failures degrade to a technical-error answer.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	apperrors "fairbot/internal/common/errors"
	"fairbot/internal/common/logger"
	"fairbot/internal/common/metrics"
	"fairbot/internal/models"
	correcttext "fairbot/internal/pipeline/correct-text"
	detectmode "fairbot/internal/pipeline/detect-mode"
	"fairbot/internal/pipeline/narrate"
	normalizetext "fairbot/internal/pipeline/normalize-text"
	parseintent "fairbot/internal/pipeline/parse-intent"
	"fairbot/internal/store"
)

type Engine struct {
	store     *store.EventStore
	intents   *parseintent.Handler
	narrator  *narrate.Handler
	startDate string
	endDate   string
	logger    logger.Logger
}

func New(
	eventStore *store.EventStore,
	intents *parseintent.Handler,
	narrator *narrate.Handler,
	startDate, endDate string,
	log logger.Logger,
) *Engine {
	return &Engine{
		store:     eventStore,
		intents:   intents,
		narrator:  narrator,
		startDate: startDate,
		endDate:   endDate,
		logger: log.With(map[string]interface{}{
			"component": "engine",
		}),
	}
}

// storytellingIntents route to the narrative synthesizer instead of the
// fixed-intent handlers.
var storytellingIntents = map[string]bool{
	models.IntentAllProgrammes:           true,
	models.IntentProgrammeByDate:         true,
	models.IntentProgrammeByDateDetailed: true,
	models.IntentProgrammeEnfant:         true,
	models.IntentProgrammeEnfantDetailed: true,
	models.IntentEditorsCountDetailed:    true,
}

// Answer resolves one question end to end. It never returns an error or
// panics outward: any failure becomes a technical-error answer with the
// resolved intent preserved.
func (e *Engine) Answer(ctx context.Context, text, lang, responseType string) (resp *models.Response) {
	requestID := uuid.NewString()
	log := e.logger.With(map[string]interface{}{"requestId": requestID})

	timer := prometheus.NewTimer(metrics.StageDuration.WithLabelValues("answer"))
	defer timer.ObserveDuration()

	mode := models.ParseMode(responseType)
	if responseType == "" {
		mode = detectmode.Detect(text)
	}
	lang = models.NormalizeLang(lang)

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from panic", map[string]interface{}{"panic": fmt.Sprint(r)})
			resp = e.technical(models.IntentUnknown, 0, fmt.Errorf("%v", r), "answer")
		}
		if resp != nil {
			metrics.AnswersTotal.WithLabelValues(resp.Intent).Inc()
		}
	}()

	res, err := e.intents.Execute(ctx, &parseintent.Input{Text: text})
	if err != nil {
		return e.technical(models.IntentUnknown, 0, err, "parse-intent")
	}

	log.Info("intent resolved", map[string]interface{}{
		"intent":     res.Intent,
		"confidence": res.Confidence,
		"source":     res.Source,
	})

	normalized := normalizetext.Normalize(text)
	wantsStory := storytellingIntents[res.Intent] ||
		strings.Contains(normalized, "commence") || strings.Contains(normalized, "debut")

	switch {
	case wantsStory:
		out, err := e.narrator.Execute(ctx, &narrate.Input{
			Source:          narrate.DeferredSource(),
			Date:            res.Entity(models.EntityDate),
			Mode:            mode,
			Question:        text,
			Lang:            lang,
			IncludeChildren: true,
			Theme:           storyTheme(res.Intent),
		})
		if err != nil {
			return e.technical(res.Intent, res.Confidence, err, "narrate")
		}
		metrics.FallbackTierUsed.WithLabelValues(tierFor(res.Source)).Inc()
		return &models.Response{Intent: res.Intent, Confidence: res.Confidence, Answer: out.Answer}

	case res.Intent != models.IntentUnknown:
		answer, err := e.handleFixed(ctx, res.Intent, res.IntentResult, mode)
		if err != nil {
			return e.technical(res.Intent, res.Confidence, err, "handle-fixed")
		}
		metrics.FallbackTierUsed.WithLabelValues(tierFor(res.Source)).Inc()
		return &models.Response{Intent: res.Intent, Confidence: res.Confidence, Answer: e.finish(answer, mode)}

	default:
		metrics.FallbackTierUsed.WithLabelValues("generic").Inc()
		return &models.Response{
			Intent:     models.IntentUnknown,
			Confidence: res.Confidence,
			Answer:     e.correctedEcho(text, mode),
		}
	}
}

// correctedEcho is the terminal fallback: echo the cleaned-up question
// back as a suggestion.
func (e *Engine) correctedEcho(text string, mode models.Mode) models.Answer {
	corrected := correcttext.Format(text, mode)
	return models.NormalizeAnswer(
		"Je n'ai pas compris votre question.",
		"Suggestion après correction : "+corrected,
	)
}

// finish applies the output formatter: summaries stay single-line,
// details follow the requested verbosity mode.
func (e *Engine) finish(a models.Answer, mode models.Mode) models.Answer {
	return models.NormalizeAnswer(
		correcttext.Format(a.Summary, models.ModeBrief),
		correcttext.Format(a.Details, mode),
	)
}

func (e *Engine) technical(intent string, confidence float64, err error, stage string) *models.Response {
	metrics.TechnicalErrors.WithLabelValues(stage).Inc()

	fields := map[string]interface{}{
		"stage": stage,
		"error": err.Error(),
	}
	var stdErr *apperrors.StandardError
	if errors.As(err, &stdErr) {
		fields["code"] = string(stdErr.Code)
		fields["category"] = apperrors.GetErrorCategory(stdErr.Code)
		fields["retryable"] = stdErr.Retryable
	}
	e.logger.Error("answer degraded to technical error", fields)
	return &models.Response{
		Intent:     intent,
		Confidence: confidence,
		Answer: models.NormalizeAnswer(
			"Une erreur est survenue.",
			"Erreur technique : "+err.Error(),
		),
	}
}

func storyTheme(intent string) string {
	switch intent {
	case models.IntentProgrammeEnfant, models.IntentProgrammeEnfantDetailed:
		return "enfants"
	case models.IntentEditorsCountDetailed:
		return "editeurs"
	default:
		return "programmes"
	}
}

func tierFor(source string) string {
	switch source {
	case "fast_path", "override":
		return "fast_path"
	default:
		return "classifier"
	}
}
