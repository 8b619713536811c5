package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a namespaced error code for agent errors.
type ErrorCode string

// Configuration error codes
const (
	CONFIG_LOAD_FAILED       ErrorCode = "CONFIG_LOAD_FAILED"
	CONFIG_PARSE_FAILED      ErrorCode = "CONFIG_PARSE_FAILED"
	CONFIG_VALIDATION_FAILED ErrorCode = "CONFIG_VALIDATION_FAILED"
)

// Asset store error codes
const (
	ASSET_DB_OPEN_FAILED ErrorCode = "ASSET_DB_OPEN_FAILED"
	ASSET_QUERY_FAILED   ErrorCode = "ASSET_QUERY_FAILED"
	ASSET_NOT_FOUND      ErrorCode = "ASSET_NOT_FOUND"
	ASSET_INVALID        ErrorCode = "ASSET_INVALID"
)

// Policy error codes
const (
	POLICY_TARGET_DENIED ErrorCode = "POLICY_TARGET_DENIED"
	POLICY_RATE_LIMITED  ErrorCode = "POLICY_RATE_LIMITED"
)

// Tool error codes
const (
	TOOL_NOT_FOUND        ErrorCode = "TOOL_NOT_FOUND"
	TOOL_ALREADY_EXISTS   ErrorCode = "TOOL_ALREADY_EXISTS"
	TOOL_INVALID_INPUT    ErrorCode = "TOOL_INVALID_INPUT"
	TOOL_EXECUTION_FAILED ErrorCode = "TOOL_EXECUTION_FAILED"
)

// Planning error codes
const (
	PLAN_GENERATION_FAILED ErrorCode = "PLAN_GENERATION_FAILED"
	PLAN_VALIDATION_FAILED ErrorCode = "PLAN_VALIDATION_FAILED"
)

// AgentError represents a structured error with error code, message, and optional cause.
// It supports error wrapping and retryability hints for error handling logic.
type AgentError struct {
	Code      ErrorCode
	Message   string
	Retryable bool
	Cause     error
}

// Error implements the error interface, returning a formatted error message.
// Format: "[CODE] message" or "[CODE] message: cause" if cause exists.
func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error for error unwrapping chains.
func (e *AgentError) Unwrap() error {
	return e.Cause
}

// Is checks if the target error matches this error by error code.
func (e *AgentError) Is(target error) bool {
	var agentErr *AgentError
	if errors.As(target, &agentErr) {
		return e.Code == agentErr.Code
	}
	return false
}

// NewError creates a new non-retryable AgentError with the given code and message.
func NewError(code ErrorCode, message string) *AgentError {
	return &AgentError{
		Code:    code,
		Message: message,
	}
}

// NewRetryableError creates a new retryable AgentError. Use this for transient
// errors that may succeed on retry (e.g., network timeouts).
func NewRetryableError(code ErrorCode, message string) *AgentError {
	return &AgentError{
		Code:      code,
		Message:   message,
		Retryable: true,
	}
}

// WrapError creates a new non-retryable AgentError that wraps an existing error.
// The wrapped error is accessible via Unwrap() for error chain inspection.
func WrapError(code ErrorCode, message string, cause error) *AgentError {
	return &AgentError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsRetryable reports whether err carries a retryable hint anywhere in its chain.
func IsRetryable(err error) bool {
	var agentErr *AgentError
	if errors.As(err, &agentErr) {
		return agentErr.Retryable
	}
	return false
}
