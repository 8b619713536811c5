package llm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// LLM error codes. Connection, timeout, and parse failures carry distinct
// codes so the agent loop can report what actually went wrong.
const (
	ErrProviderNotFound     types.ErrorCode = "LLM_PROVIDER_NOT_FOUND"
	ErrProviderUnavailable  types.ErrorCode = "LLM_PROVIDER_UNAVAILABLE"
	ErrProviderUnauthorized types.ErrorCode = "LLM_PROVIDER_UNAUTHORIZED"
	ErrProviderRateLimited  types.ErrorCode = "LLM_PROVIDER_RATE_LIMITED"

	ErrInvalidRequest      types.ErrorCode = "LLM_INVALID_REQUEST"
	ErrResponseParseFailed types.ErrorCode = "LLM_RESPONSE_PARSE_FAILED"
	ErrEmptyResponse       types.ErrorCode = "LLM_EMPTY_RESPONSE"

	ErrNetworkFailed   types.ErrorCode = "LLM_NETWORK_FAILED"
	ErrTimeoutExceeded types.ErrorCode = "LLM_TIMEOUT_EXCEEDED"
)

// IsRetryable determines if an error is transient and may succeed on retry.
func IsRetryable(err error) bool {
	var agentErr *types.AgentError
	if !errors.As(err, &agentErr) {
		return false
	}
	if agentErr.Retryable {
		return true
	}
	switch agentErr.Code {
	case ErrNetworkFailed, ErrTimeoutExceeded, ErrProviderRateLimited, ErrProviderUnavailable:
		return true
	default:
		return false
	}
}

// NewProviderNotFoundError creates an error for an unknown provider name.
func NewProviderNotFoundError(providerName string) *types.AgentError {
	return types.NewError(ErrProviderNotFound, "provider not found: "+providerName)
}

// NewProviderUnavailableError creates a retryable error for a provider that
// cannot currently serve requests.
func NewProviderUnavailableError(providerName string, cause error) *types.AgentError {
	return &types.AgentError{
		Code:      ErrProviderUnavailable,
		Message:   "provider temporarily unavailable: " + providerName,
		Retryable: true,
		Cause:     cause,
	}
}

// NewRateLimitError creates a retryable error for provider rate limiting.
func NewRateLimitError(providerName string) *types.AgentError {
	return &types.AgentError{
		Code:      ErrProviderRateLimited,
		Message:   "rate limit exceeded for provider: " + providerName,
		Retryable: true,
	}
}

// NewInvalidRequestError creates an error for requests the provider rejects.
func NewInvalidRequestError(message string) *types.AgentError {
	return types.NewError(ErrInvalidRequest, message)
}

// NewNetworkError creates a retryable error for connection failures.
func NewNetworkError(message string, cause error) *types.AgentError {
	return &types.AgentError{
		Code:      ErrNetworkFailed,
		Message:   message,
		Retryable: true,
		Cause:     cause,
	}
}

// NewTimeoutError creates a retryable error for deadline failures.
func NewTimeoutError(message string) *types.AgentError {
	return &types.AgentError{
		Code:      ErrTimeoutExceeded,
		Message:   message,
		Retryable: true,
	}
}

// NewParseError creates an error for responses that could not be decoded.
func NewParseError(message string, cause error) *types.AgentError {
	return types.WrapError(ErrResponseParseFailed, message, cause)
}

// NewUnauthorizedError creates an authentication error for a provider.
func NewUnauthorizedError(providerName string, cause error) *types.AgentError {
	return &types.AgentError{
		Code:    ErrProviderUnauthorized,
		Message: fmt.Sprintf("provider %q authentication failed", providerName),
		Cause:   cause,
	}
}

// TranslateError classifies a raw provider error by message content so that
// connection, timeout, auth, and rate-limit failures stay distinguishable.
func TranslateError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var agentErr *types.AgentError
	if errors.As(err, &agentErr) {
		return err
	}

	lowerMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lowerMsg, "unauthorized"), strings.Contains(lowerMsg, "authentication"), strings.Contains(lowerMsg, "api key"):
		return NewUnauthorizedError(provider, err)
	case strings.Contains(lowerMsg, "rate limit"), strings.Contains(lowerMsg, "too many requests"):
		return NewRateLimitError(provider)
	case strings.Contains(lowerMsg, "timeout"), strings.Contains(lowerMsg, "deadline"):
		return NewTimeoutError(err.Error())
	case strings.Contains(lowerMsg, "network"), strings.Contains(lowerMsg, "connection"), strings.Contains(lowerMsg, "no such host"):
		return NewNetworkError(err.Error(), err)
	default:
		return NewProviderUnavailableError(provider, err)
	}
}
