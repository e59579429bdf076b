// Package errors provides standardized error handling for the search engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeEmbeddingUnavailable ErrorCode = "EMBEDDING_UNAVAILABLE"
	ErrCodeEmbeddingTimeout     ErrorCode = "EMBEDDING_TIMEOUT"
	ErrCodeEmbeddingDimension   ErrorCode = "EMBEDDING_DIMENSION_MISMATCH"

	ErrCodeInterpretationFailed  ErrorCode = "INTERPRETATION_FAILED"
	ErrCodeInterpretationTimeout ErrorCode = "INTERPRETATION_TIMEOUT"

	ErrCodeSearchBackend       ErrorCode = "SEARCH_BACKEND_ERROR"
	ErrCodeSearchTimeout       ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound       ErrorCode = "INDEX_NOT_FOUND"
	ErrCodeDatabaseUnavailable ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecution      ErrorCode = "QUERY_EXECUTION_FAILED"
)

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrEmbeddingUnavailable = errors.New("EMBEDDING_UNAVAILABLE")
	ErrInterpretationFailed = errors.New("INTERPRETATION_FAILED")
	ErrSearchBackend        = errors.New("SEARCH_BACKEND_ERROR")
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

// Unwrap maps the error code onto its sentinel so callers can use errors.Is
// without depending on the concrete type.
func (e *StandardError) Unwrap() error {
	switch e.Code {
	case ErrCodeEmbeddingUnavailable, ErrCodeEmbeddingTimeout, ErrCodeEmbeddingDimension:
		return ErrEmbeddingUnavailable
	case ErrCodeInterpretationFailed, ErrCodeInterpretationTimeout:
		return ErrInterpretationFailed
	case ErrCodeSearchBackend, ErrCodeSearchTimeout, ErrCodeIndexNotFound:
		return ErrSearchBackend
	}
	return nil
}

// NewEmbeddingUnavailableError creates a retryable embedding-service error.
// The core itself never retries; retryability is advice for the caller.
func NewEmbeddingUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingUnavailable,
		Message:   "Embedding service call failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingTimeoutError creates a retryable embedding timeout error.
func NewEmbeddingTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingTimeout,
		Message:   "Embedding service call timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmbeddingDimensionError creates a non-retryable dimension mismatch error.
func NewEmbeddingDimensionError(want, got int) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmbeddingDimension,
		Message:   "Embedding dimension does not match the index mapping",
		Details:   fmt.Sprintf("want: %d, got: %d", want, got),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInterpretationFailedError creates an interpretation error. Callers
// recover by falling back to an unconstrained intent.
func NewInterpretationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInterpretationFailed,
		Message:   "Question interpretation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInterpretationTimeoutError creates an interpretation timeout error.
func NewInterpretationTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeInterpretationTimeout,
		Message:   "Question interpretation timed out",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchBackendError creates a retryable search engine error carrying the
// engine's diagnostic message.
func NewSearchBackendError(diagnostic string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchBackend,
		Message:   "Search engine rejected the request",
		Details:   diagnostic,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchTimeoutError creates a retryable search timeout error.
func NewSearchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Search engine query timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexNotFoundError creates a non-retryable missing index error.
func NewIndexNotFoundError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index does not exist",
		Details:   fmt.Sprintf("index: %s", index),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseUnavailable,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryName string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecution,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("query: %s, error: %s", queryName, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
