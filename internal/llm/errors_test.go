package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

func TestTranslateErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		raw      error
		wantCode types.ErrorCode
	}{
		{"timeout", errors.New("context deadline exceeded"), ErrTimeoutExceeded},
		{"connection refused", errors.New("dial tcp 127.0.0.1:11434: connection refused"), ErrNetworkFailed},
		{"unknown host", errors.New("lookup llm.internal: no such host"), ErrNetworkFailed},
		{"auth", errors.New("401 unauthorized"), ErrProviderUnauthorized},
		{"rate limit", errors.New("429 too many requests"), ErrProviderRateLimited},
		{"anything else", errors.New("model exploded"), ErrProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TranslateError("ollama", tt.raw)
			var agentErr *types.AgentError
			require.ErrorAs(t, err, &agentErr)
			assert.Equal(t, tt.wantCode, agentErr.Code)
		})
	}
}

func TestTranslateErrorPassthrough(t *testing.T) {
	already := NewTimeoutError("request timed out")
	assert.Same(t, already, TranslateError("openai", already).(*types.AgentError))
	assert.NoError(t, TranslateError("openai", nil))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewNetworkError("connection reset", nil)))
	assert.True(t, IsRetryable(NewRateLimitError("openai")))
	assert.False(t, IsRetryable(NewInvalidRequestError("bad role")))
	assert.False(t, IsRetryable(errors.New("plain error")))
}
