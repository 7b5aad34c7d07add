package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrMissingField ErrorCode = "MISSING_FIELD"

	// Downstream errors
	ErrLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
	ErrStoreError      ErrorCode = "STORE_ERROR"
	ErrCacheError      ErrorCode = "CACHE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string, err error) *DomainError {
	return NewError(ErrInvalidInput, message, err)
}

// NewMissingFieldError reports a required request key that was absent or null.
func NewMissingFieldError(field string) *DomainError {
	return NewError(ErrMissingField, fmt.Sprintf("missing required field: %s", field), nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewStoreError(err error) *DomainError {
	return NewError(ErrStoreError, "Failed to write to document store", err)
}

// NewCacheError wraps a failed evaluation cache read or write.
func NewCacheError(err error) *DomainError {
	return NewError(ErrCacheError, "Evaluation cache unavailable", err)
}

// CodeOf returns the ErrorCode carried by err, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}
