package factory

import (
	"fmt"

	"tenx-cards-be/pkg/llm"
	"tenx-cards-be/pkg/llm/openrouter"
)

func NewLLMProvider(providerType string, cfg openrouter.Config) (llm.Provider, error) {
	switch providerType {
	case "openrouter":
		return openrouter.NewOpenRouterProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
