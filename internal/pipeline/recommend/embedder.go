package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "fairbot/internal/common/errors"
	"fairbot/internal/common/logger"
)

var (
	ErrEmbeddingFailed  = errors.New("EMBEDDING_FAILED")
	ErrEmbeddingTimeout = errors.New("EMBEDDING_TIMEOUT")
)

// HTTPEmbedder calls the sentence embedding model served behind HTTP.
type HTTPEmbedder struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     logger.Logger
}

type embedRequest struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func NewHTTPEmbedder(config *Config, log logger.Logger) *HTTPEmbedder {
	return &HTTPEmbedder{
		baseURL: config.EmbedderBaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		maxRetries: config.MaxRetries,
		logger: log.With(map[string]interface{}{
			"component": "http-embedder",
		}),
	}
}

func (e *HTTPEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	payload, err := json.Marshal(embedRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %v", ErrEmbeddingFailed, err)
	}

	var lastErr error
	attempts := e.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			backoff := time.Duration(100*(1<<(attempt-2))) * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %w", ErrEmbeddingTimeout, apperrors.NewEmbeddingTimeoutError())
			case <-time.After(backoff):
			}
			e.logger.Warn("retrying embedder call", map[string]interface{}{
				"attempt": attempt,
			})
		}

		vec, err := e.embedOnce(ctx, payload)
		if err == nil {
			return vec, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrEmbeddingTimeout, apperrors.NewEmbeddingTimeoutError())
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrEmbeddingFailed, apperrors.NewEmbeddingFailedError(lastErr))
}

func (e *HTTPEmbedder) embedOnce(ctx context.Context, payload []byte) ([]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embed", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedder returned status %d", resp.StatusCode)
	}

	var body embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %v", err)
	}
	if len(body.Embedding) == 0 {
		return nil, fmt.Errorf("embedder returned an empty vector")
	}

	return body.Embedding, nil
}
