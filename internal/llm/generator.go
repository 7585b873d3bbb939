// Package llm provides the text Generator seam the pipeline stages call:
// prompt in, text out, with a cache-eligibility flag. Decorators add a
// persistent response cache and request pacing.
package llm

import (
	"context"
	"fmt"

	"github.com/julianshen/codetutor/internal/provider"
)

// Generator produces text for a prompt. cacheEligible marks calls that may
// be served from or stored in a response cache; retried calls pass false so
// a cached reply that already failed validation is never replayed.
type Generator interface {
	Generate(ctx context.Context, prompt string, cacheEligible bool) (string, error)
}

// ProviderGenerator adapts an LLMProvider into a Generator.
type ProviderGenerator struct {
	provider  provider.LLMProvider
	model     string
	maxTokens int
}

// NewGenerator creates a ProviderGenerator for the given model.
func NewGenerator(p provider.LLMProvider, model string, maxTokens int) *ProviderGenerator {
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	return &ProviderGenerator{provider: p, model: model, maxTokens: maxTokens}
}

// Generate sends the prompt as a single-message completion request.
func (g *ProviderGenerator) Generate(ctx context.Context, prompt string, cacheEligible bool) (string, error) {
	text, err := g.provider.Complete(ctx, provider.CompletionRequest{
		Model:         g.model,
		Prompt:        prompt,
		MaxTokens:     g.maxTokens,
		CacheEligible: cacheEligible,
	})
	if err != nil {
		return "", fmt.Errorf("llm generate: %w", err)
	}
	return text, nil
}
