package tutorial

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/julianshen/codetutor/internal/crawler"
	"github.com/julianshen/codetutor/internal/engine"
	"github.com/julianshen/codetutor/internal/llm"
)

// Core analysis stages retry harder than the best-effort API analysis ones.
var (
	coreRetry = engine.RetryPolicy{MaxAttempts: 5, Wait: 20 * time.Second}
	apiRetry  = engine.RetryPolicy{MaxAttempts: 3, Wait: 15 * time.Second}
)

// Run executes the full tutorial pipeline over state, using collector for
// the source files and gen for every LLM call.
func Run(ctx context.Context, state *Context, collector crawler.Collector, gen llm.Generator) error {
	pipeline := engine.New[Context]().
		Add(&FetchSource{Collector: collector}, engine.Once).
		Add(&AnalyzeHTTPCalls{Gen: gen}, apiRetry).
		Add(&AnalyzeEndpoints{Gen: gen}, apiRetry).
		Add(&WriteAPIReference{Gen: gen}, apiRetry).
		Add(&IdentifyAbstractions{Gen: gen}, coreRetry).
		Add(&AnalyzeRelationships{Gen: gen}, coreRetry).
		Add(&OrderChapters{Gen: gen}, coreRetry).
		Add(&WriteChapters{Gen: gen, Retry: coreRetry}, engine.Once).
		Add(&CombineTutorial{}, engine.Once)

	if err := pipeline.Run(ctx, state); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "tutorial: done. Files are in %s\n", state.OutputPath)
	return nil
}
