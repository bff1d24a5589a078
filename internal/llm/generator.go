package llm

import (
	"context"
	"fmt"
)

// Generator produces text from a system directive and a user prompt.
// Implementations must be safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string, temperature float64) (string, error)
}

// NewGenerator builds the client for cfg.Provider.
func NewGenerator(ctx context.Context, cfg *Config) (Generator, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		client, err := NewGeminiClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderOpenAI:
		client, err := NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}
