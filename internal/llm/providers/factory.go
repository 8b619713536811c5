package providers

import (
	"strings"

	"github.com/DimKouts84/black-glove-agent-sub000/internal/config"
	"github.com/DimKouts84/black-glove-agent-sub000/internal/llm"
)

// New builds a Gateway from the llm section of the configuration.
// "lmstudio" is an alias for the OpenAI-compatible gateway pointed at a
// local server.
func New(cfg config.LLMConfig) (llm.Gateway, error) {
	switch strings.ToLower(cfg.Provider) {
	case "ollama":
		return NewOllamaGateway(cfg.BaseURL, cfg.Model)
	case "openai", "lmstudio", "openai-compatible":
		return NewOpenAIGateway(cfg.BaseURL, cfg.Model, cfg.APIKey)
	default:
		return nil, llm.NewProviderNotFoundError(cfg.Provider)
	}
}
