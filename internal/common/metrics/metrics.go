// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnswersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_answers_total",
			Help: "Total number of answers produced, by resolved intent",
		},
		[]string{"intent"},
	)

	FallbackTierUsed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_fallback_tier_total",
			Help: "Which resolution tier produced the answer",
		},
		[]string{"tier"}, // fast_path, classifier, faq, recommender, generic
	)

	TechnicalErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_technical_errors_total",
			Help: "Answers degraded to a technical-error response",
		},
		[]string{"stage"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chatbot_stage_duration_seconds",
			Help: "Duration of each pipeline stage in seconds",
		},
		[]string{"stage"},
	)
)
