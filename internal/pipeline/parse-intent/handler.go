package parseintent

import (
	"context"
	"errors"

	"fairbot/internal/common/logger"
	"fairbot/internal/models"
	normalizetext "fairbot/internal/pipeline/normalize-text"
)

const TaskType = "parse-intent"

var (
	ErrClassifierUnavailable = errors.New("CLASSIFIER_UNAVAILABLE")
	ErrClassifierTimeout     = errors.New("CLASSIFIER_TIMEOUT")
)

type Handler struct {
	config     *Config
	classifier Classifier
	logger     logger.Logger
}

func NewHandler(config *Config, classifier Classifier, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		classifier: classifier,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Execute resolves the intent of one question. The fast path is tried first
// and always wins over the classifier; manual overrides pre-empt the model;
// classifier output below the confidence gate is downgraded to unknown.
// A classifier failure also degrades to unknown rather than failing the
// request, so the next fallback tier still gets its chance.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	normalized := normalizetext.Normalize(input.Text)

	if result, ok := matchFastRules(normalized); ok {
		result.Entities = withUserInput(result.Entities, input.Text)
		h.logger.Info("fast path matched", map[string]interface{}{
			"intent": result.Intent,
		})
		return &Output{IntentResult: result}, nil
	}

	if result, ok := matchOverride(normalized); ok {
		result.Entities = withUserInput(result.Entities, input.Text)
		h.logger.Info("manual override applied", map[string]interface{}{
			"intent":     result.Intent,
			"confidence": result.Confidence,
		})
		return &Output{IntentResult: result}, nil
	}

	if result, ok := matchKeywords(normalized); ok {
		result.Entities = withUserInput(result.Entities, input.Text)
		h.logger.Info("keyword rule matched", map[string]interface{}{
			"intent": result.Intent,
		})
		return &Output{IntentResult: result}, nil
	}

	label, confidence, err := h.classifier.Classify(ctx, input.Text)
	if err != nil {
		h.logger.Warn("classifier unavailable, downgrading to unknown", map[string]interface{}{
			"error": err.Error(),
		})
		return &Output{IntentResult: models.IntentResult{
			Intent:     models.IntentUnknown,
			Confidence: 0,
			Entities:   withUserInput(nil, input.Text),
			Source:     "classifier",
		}}, nil
	}

	intent := label
	if confidence < h.config.MinScore {
		intent = models.IntentUnknown
	}

	h.logger.Info("intent classified", map[string]interface{}{
		"intent":     intent,
		"label":      label,
		"confidence": confidence,
	})

	return &Output{IntentResult: models.IntentResult{
		Intent:     intent,
		Confidence: confidence,
		Entities:   withUserInput(nil, input.Text),
		Source:     "classifier",
	}}, nil
}

func withUserInput(entities map[string]string, raw string) map[string]string {
	if entities == nil {
		entities = make(map[string]string, 1)
	}
	entities[models.EntityUserInput] = raw
	return entities
}
