package extract

import (
	"context"

	"finstat_engine/pkg/core/llm"
)

// LLMAdapter bridges llm.Provider interface to extract.AIProvider interface
type LLMAdapter struct {
	provider llm.Provider
}

// NewLLMAdapter creates a new adapter wrapping an llm.Provider
func NewLLMAdapter(provider llm.Provider) *LLMAdapter {
	return &LLMAdapter{provider: provider}
}

// Generate implements extract.AIProvider interface
func (a *LLMAdapter) Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	// llm.Provider.GenerateResponse has (prompt, systemPrompt) order
	return a.provider.GenerateResponse(ctx, userPrompt, systemPrompt, nil)
}
