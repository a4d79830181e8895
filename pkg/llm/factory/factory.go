package factory

import (
	"context"
	"fmt"

	"nexter-ai-be/pkg/llm"
	"nexter-ai-be/pkg/llm/gemini"
	"nexter-ai-be/pkg/llm/ollama"
	"nexter-ai-be/pkg/llm/openai"
)

// NewLLMProvider wires the configured backend. apiKey is unused for ollama.
func NewLLMProvider(ctx context.Context, providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "openai":
		return openai.NewOpenAIProvider(apiKey, baseURL, modelName), nil
	case "gemini":
		return gemini.NewGeminiProvider(ctx, apiKey, modelName)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
