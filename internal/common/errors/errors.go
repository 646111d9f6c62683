// Package errors provides standardized error handling for the answer pipeline.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
//
// "No match" and "empty result" conditions are NOT errors in this pipeline:
// they are ordinary return values that select the next fallback tier. Only
// external-collaborator failures surface as errors.
type ErrorCode string

const (
	ErrCodeClassifierUnavailable ErrorCode = "CLASSIFIER_UNAVAILABLE"
	ErrCodeClassifierTimeout     ErrorCode = "CLASSIFIER_TIMEOUT"

	ErrCodeEmbeddingFailed  ErrorCode = "EMBEDDING_FAILED"
	ErrCodeEmbeddingTimeout ErrorCode = "EMBEDDING_TIMEOUT"

	ErrCodeDatastoreConnectionFailed ErrorCode = "DATASTORE_CONNECTION_FAILED"
	ErrCodeDatastoreQueryFailed      ErrorCode = "DATASTORE_QUERY_FAILED"
	ErrCodeSeedValidationFailed      ErrorCode = "SEED_VALIDATION_FAILED"

	ErrCodeSpeechTranscribeFailed ErrorCode = "SPEECH_TRANSCRIBE_FAILED"
	ErrCodeSpeechSynthesisFailed  ErrorCode = "SPEECH_SYNTHESIS_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewClassifierUnavailableError creates a retryable classifier error.
func NewClassifierUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierUnavailable,
		Message:   "Intent classifier API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewClassifierTimeoutError creates a retryable classifier timeout error.
func NewClassifierTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeClassifierTimeout,
		Message:   "Intent classifier timeout",
		Details:   "API call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingFailedError creates a retryable embedding error.
func NewEmbeddingFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingFailed,
		Message:   "Embedding API error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingTimeoutError creates a retryable embedding timeout error.
func NewEmbeddingTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingTimeout,
		Message:   "Embedding API timeout",
		Details:   "API call exceeded timeout threshold",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatastoreConnectionFailedError creates a retryable datastore connection error.
func NewDatastoreConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatastoreConnectionFailed,
		Message:   "Event datastore connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatastoreQueryFailedError creates a retryable datastore query error.
func NewDatastoreQueryFailedError(collection string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatastoreQueryFailed,
		Message:   "Event datastore query error",
		Details:   fmt.Sprintf("collection: %s, error: %s", collection, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSeedValidationFailedError creates a non-retryable seed validation error.
func NewSeedValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSeedValidationFailed,
		Message:   "Seed document failed schema validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpeechTranscribeFailedError creates a retryable speech-to-text error.
func NewSpeechTranscribeFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpeechTranscribeFailed,
		Message:   "Speech transcription error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSpeechSynthesisFailedError creates a retryable text-to-speech error.
func NewSpeechSynthesisFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSpeechSynthesisFailed,
		Message:   "Speech synthesis error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CLASSIFIER") || strings.Contains(codeStr, "EMBEDDING"):
		return "MODEL"
	case strings.Contains(codeStr, "DATASTORE") || strings.Contains(codeStr, "SEED"):
		return "DATASTORE"
	case strings.Contains(codeStr, "SPEECH"):
		return "SPEECH"
	default:
		return "OTHER"
	}
}
