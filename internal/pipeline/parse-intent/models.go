// internal/pipeline/parse-intent/models.go
package parseintent

import (
	"context"

	"fairbot/internal/models"
)

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	models.IntentResult
}

// Classifier is the pre-trained intent model, consumed as an opaque
// label+score function.
type Classifier interface {
	Classify(ctx context.Context, text string) (label string, confidence float64, err error)
}
