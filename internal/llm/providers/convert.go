// Package providers adapts langchaingo model backends to the llm.Gateway
// interface used by the agent roles.
package providers

import (
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/types"
)

// validateMessages rejects requests the provider would fail anyway, so
// the caller gets an invalid-request error instead of a provider one.
func validateMessages(messages []llm.Message) error {
	if len(messages) == 0 {
		return llm.NewInvalidRequestError("no messages to send")
	}
	for _, msg := range messages {
		if err := msg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func toSchemaMessages(messages []llm.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		role := schema.ChatMessageTypeHuman
		switch msg.Role {
		case llm.RoleSystem:
			role = schema.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = schema.ChatMessageTypeAI
		case llm.RoleTool:
			// langchaingo v0.1.7 predates the tool role; function is its
			// earlier name for the same message type.
			role = schema.ChatMessageTypeFunction
		}
		result = append(result, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(msg.Content)},
		})
	}
	return result
}

func buildCallOptions(opts llm.GenerateOptions) []llms.CallOption {
	var callOpts []llms.CallOption
	if opts.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}
	if len(opts.Stop) > 0 {
		callOpts = append(callOpts, llms.WithStopWords(opts.Stop))
	}
	return callOpts
}

// firstChoice extracts the completion text, translating empty responses
// into a typed error so callers never hand "" to the decoders.
func firstChoice(provider string, resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Content == "" {
		return "", types.NewError(llm.ErrEmptyResponse, "provider "+provider+" returned an empty response")
	}
	return resp.Choices[0].Content, nil
}
