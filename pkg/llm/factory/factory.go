package factory

import (
	"fmt"
	"time"

	"coursehub-be/internal/config"
	"coursehub-be/pkg/llm"
	"coursehub-be/pkg/llm/ollama"
	"coursehub-be/pkg/llm/openai"
)

func NewLLMProvider(cfg config.AIConfig) (llm.LLMProvider, error) {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
		return openai.NewProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel, timeout), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, cfg.LLMModel, timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}
