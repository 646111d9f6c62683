package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"fairbot/internal/common/logger"
	"fairbot/internal/models"
)

const TaskType = "recommend"

type Handler struct {
	config   *Config
	embedder Embedder
	items    []models.RecommendationItem
	logger   logger.Logger
}

func NewHandler(config *Config, embedder Embedder, log logger.Logger) *Handler {
	items := make([]models.RecommendationItem, len(catalog))
	copy(items, catalog)

	return &Handler{
		config:   config,
		embedder: embedder,
		items:    items,
		logger: log.With(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

// Warm precomputes the catalog embeddings. Items whose embedding fails
// stay vectorless and are skipped at query time.
func (h *Handler) Warm(ctx context.Context) error {
	var failed int
	for i := range h.items {
		vec, err := h.embedder.Embed(ctx, h.items[i].EmbeddingText())
		if err != nil {
			failed++
			h.logger.Warn("catalog embedding failed", map[string]interface{}{
				"title": h.items[i].Title,
				"error": err.Error(),
			})
			continue
		}
		h.items[i].Embedding = vec
	}

	if failed == len(h.items) {
		return fmt.Errorf("no catalog item could be embedded")
	}

	h.logger.Info("catalog warmed", map[string]interface{}{
		"items":  len(h.items),
		"failed": failed,
	})
	return nil
}

type scored struct {
	score float64
	item  models.RecommendationItem
}

// Execute scores the question against the catalog and returns up to
// TopK formatted lines above the similarity floor. A too-short question
// yields an empty result; an embedder outage yields an empty result
// marked Unavailable. Neither is an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	question := strings.TrimSpace(input.Question)
	if len(question) < h.config.MinQueryLen {
		return &Output{}, nil
	}

	queryVec, err := h.embedder.Embed(ctx, question)
	if err != nil {
		h.logger.Warn("question embedding failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &Output{Unavailable: true}, nil
	}

	var candidates []scored
	for _, item := range h.items {
		if input.Category != "" && item.Category != input.Category {
			continue
		}
		if item.Embedding == nil {
			continue
		}
		score, ok := cosineSimilarity(queryVec, item.Embedding)
		if !ok {
			h.logger.Warn("similarity skipped", map[string]interface{}{
				"title": item.Title,
			})
			continue
		}
		candidates = append(candidates, scored{score: score, item: item})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > h.config.TopK {
		candidates = candidates[:h.config.TopK]
	}

	var lines []string
	for _, c := range candidates {
		if c.score <= h.config.MinScore {
			continue
		}
		lines = append(lines, fmt.Sprintf("→ %s (%s) — pertinence %.2f", c.item.Title, c.item.Category, c.score))
	}

	return &Output{Lines: lines}, nil
}

// cosineSimilarity reports false for mismatched dimensions or a zero
// vector on either side.
func cosineSimilarity(a, b []float64) (float64, bool) {
	if len(a) != len(b) || len(a) == 0 {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
