// Package provider abstracts the LLM backends the generator runs against.
// Concrete implementations live in subpackages and register themselves via
// RegisterProvider.
package provider

import "context"

// LLMProvider defines the interface for requesting a completion from an LLM
// provider. Calls block until the full response text is available.
type LLMProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionRequest represents a single-prompt completion request.
type CompletionRequest struct {
	Model         string
	Prompt        string
	MaxTokens     int
	Temperature   *float64
	CacheEligible bool // providers with server-side prompt caching may reuse a cached result
}
