package providers

import (
	"context"
	"os"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
)

// OpenAIGateway talks to OpenAI or any OpenAI-compatible endpoint
// (LM Studio, vLLM) when a base URL is supplied.
type OpenAIGateway struct {
	client *openai.LLM
	model  string
}

// NewOpenAIGateway creates a gateway. The API key falls back to the
// OPENAI_API_KEY environment variable.
func NewOpenAIGateway(baseURL, model, apiKey string) (*OpenAIGateway, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" && baseURL == "" {
		return nil, llm.NewUnauthorizedError("openai", nil)
	}
	if apiKey == "" {
		// local OpenAI-compatible servers accept any token
		apiKey = "not-needed"
	}

	opts := []openai.Option{openai.WithToken(apiKey)}
	if model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, llm.TranslateError("openai", err)
	}
	return &OpenAIGateway{client: client, model: model}, nil
}

func (g *OpenAIGateway) Name() string {
	return "openai"
}

// Generate sends the conversation and returns the completion text.
func (g *OpenAIGateway) Generate(ctx context.Context, messages []llm.Message, opts llm.GenerateOptions) (string, error) {
	if err := validateMessages(messages); err != nil {
		return "", err
	}
	resp, err := g.client.GenerateContent(ctx, toSchemaMessages(messages), buildCallOptions(opts)...)
	if err != nil {
		return "", llm.TranslateError("openai", err)
	}
	return firstChoice("openai", resp)
}
