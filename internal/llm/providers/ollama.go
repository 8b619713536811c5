package providers

import (
	"context"

	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
)

// OllamaGateway talks to a local Ollama server.
type OllamaGateway struct {
	client *ollama.LLM
	model  string
}

// NewOllamaGateway creates a gateway against the given server URL.
func NewOllamaGateway(baseURL, model string) (*OllamaGateway, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}

	opts := []ollama.Option{ollama.WithServerURL(baseURL)}
	if model != "" {
		opts = append(opts, ollama.WithModel(model))
	}

	client, err := ollama.New(opts...)
	if err != nil {
		return nil, llm.TranslateError("ollama", err)
	}
	return &OllamaGateway{client: client, model: model}, nil
}

func (g *OllamaGateway) Name() string {
	return "ollama"
}

// Generate sends the conversation to Ollama and returns the completion text.
func (g *OllamaGateway) Generate(ctx context.Context, messages []llm.Message, opts llm.GenerateOptions) (string, error) {
	if err := validateMessages(messages); err != nil {
		return "", err
	}
	resp, err := g.client.GenerateContent(ctx, toSchemaMessages(messages), buildCallOptions(opts)...)
	if err != nil {
		return "", llm.TranslateError("ollama", err)
	}
	return firstChoice("ollama", resp)
}
