package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgentErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *AgentError
		want string
	}{
		{
			name: "without cause",
			err:  NewError(TOOL_NOT_FOUND, "tool nmap not registered"),
			want: "[TOOL_NOT_FOUND] tool nmap not registered",
		},
		{
			name: "with cause",
			err:  WrapError(ASSET_QUERY_FAILED, "listing assets", errors.New("database is locked")),
			want: "[ASSET_QUERY_FAILED] listing assets: database is locked",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAgentErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := WrapError(ASSET_DB_OPEN_FAILED, "opening asset store", cause)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Unwrap())
}

func TestAgentErrorIsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("dispatch: %w", NewError(POLICY_RATE_LIMITED, "dns_lookup over budget"))

	assert.ErrorIs(t, err, NewError(POLICY_RATE_LIMITED, "different message"))
	assert.NotErrorIs(t, err, NewError(POLICY_TARGET_DENIED, ""))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewRetryableError(TOOL_EXECUTION_FAILED, "timeout")))
	assert.False(t, IsRetryable(NewError(TOOL_EXECUTION_FAILED, "bad input")))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", NewRetryableError(PLAN_GENERATION_FAILED, "transient"))))
}
