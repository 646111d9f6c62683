package parseintent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "fairbot/internal/common/errors"
	"fairbot/internal/common/logger"
)

// HTTPClassifier calls the intent model served behind an HTTP endpoint.
// The model is trained offline; at runtime it is a pure label+score oracle.
type HTTPClassifier struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     logger.Logger
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

func NewHTTPClassifier(config *Config, log logger.Logger) *HTTPClassifier {
	return &HTTPClassifier{
		baseURL: config.ClassifierBaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		maxRetries: config.MaxRetries,
		logger: log.With(map[string]interface{}{
			"component": "http-classifier",
		}),
	}
}

func (c *HTTPClassifier) Classify(ctx context.Context, text string) (string, float64, error) {
	payload, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return "", 0, fmt.Errorf("%w: marshal request: %v", ErrClassifierUnavailable, err)
	}

	var lastErr error
	attempts := c.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(100*(1<<(attempt-2))) * time.Millisecond
			select {
			case <-ctx.Done():
				return "", 0, fmt.Errorf("%w: %w", ErrClassifierTimeout, apperrors.NewClassifierTimeoutError())
			case <-time.After(backoff):
			}
			c.logger.Warn("retrying classifier call", map[string]interface{}{
				"attempt": attempt,
			})
		}

		label, confidence, err := c.classifyOnce(ctx, payload)
		if err == nil {
			return label, confidence, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", 0, fmt.Errorf("%w: %v", ErrClassifierTimeout, ctx.Err())
		}
	}

	return "", 0, fmt.Errorf("%w: %w", ErrClassifierUnavailable, apperrors.NewClassifierUnavailableError(lastErr))
}

func (c *HTTPClassifier) classifyOnce(ctx context.Context, payload []byte) (string, float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var body classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", 0, fmt.Errorf("decode response: %v", err)
	}

	return body.Intent, body.Confidence, nil
}
