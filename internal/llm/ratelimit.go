package llm

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Generator with a token-bucket limiter so sequential
// stage loops do not exceed the provider's request-per-minute quota.
type RateLimited struct {
	inner   Generator
	limiter *rate.Limiter
}

// NewRateLimited allows at most requestsPerMinute calls per minute, with a
// burst of one. A non-positive value disables limiting.
func NewRateLimited(inner Generator, requestsPerMinute int) *RateLimited {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
	return &RateLimited{inner: inner, limiter: limiter}
}

// Generate waits for limiter admission, then delegates to the inner
// generator. Cached replies still count against the budget; the wrapping
// order (cache outside, limiter inside) keeps cache hits free.
func (r *RateLimited) Generate(ctx context.Context, prompt string, cacheEligible bool) (string, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}
	return r.inner.Generate(ctx, prompt, cacheEligible)
}
