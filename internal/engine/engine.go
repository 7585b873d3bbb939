// Package engine provides the sequential stage pipeline: a prepare/execute/
// finalize stage contract, a bounded retry policy shared by validation and
// transport failures, and a strictly ordered runner. Stage N+1 never observes
// shared state until stage N's finalize has committed.
package engine

import (
	"context"
	"fmt"
	"time"
)

// Stage is one retry-wrapped unit of the pipeline over a shared state S.
// Prepare reads the state, Execute performs the work (attempt starts at 0 so
// implementations can restrict cache use to the first attempt), and Finalize
// commits results back by adding new fields only.
type Stage[S any] interface {
	Name() string
	Prepare(ctx context.Context, state *S) (any, error)
	Execute(ctx context.Context, prepared any, attempt int) (any, error)
	Finalize(state *S, prepared, result any) error
}

// RetryPolicy bounds Execute attempts for one stage or batch item. Validation
// and transport failures consume attempts from the same budget.
type RetryPolicy struct {
	MaxAttempts int
	Wait        time.Duration
}

// Once is the policy for stages whose Execute must not be repeated.
var Once = RetryPolicy{MaxAttempts: 1}

// Retry invokes fn with increasing attempt numbers until it succeeds or the
// policy is exhausted, waiting policy.Wait between attempts. Context
// cancellation aborts the wait. The last failure is returned when the budget
// runs out.
func Retry(ctx context.Context, policy RetryPolicy, fn func(attempt int) error) error {
	attempts := policy.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 && policy.Wait > 0 {
			timer := time.NewTimer(policy.Wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = fn(attempt); lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", attempts, lastErr)
}

type entry[S any] struct {
	stage Stage[S]
	retry RetryPolicy
}

// Pipeline is a fixed linear chain of stages over a shared state.
type Pipeline[S any] struct {
	entries []entry[S]
}

// New creates an empty pipeline.
func New[S any]() *Pipeline[S] {
	return &Pipeline[S]{}
}

// Add appends a stage with its retry policy and returns the pipeline for
// chaining.
func (p *Pipeline[S]) Add(stage Stage[S], retry RetryPolicy) *Pipeline[S] {
	p.entries = append(p.entries, entry[S]{stage: stage, retry: retry})
	return p
}

// Run executes the stages strictly in order. Any stage that exhausts its
// retry budget aborts the whole run; no later stage starts and the state
// keeps only what earlier stages committed.
func (p *Pipeline[S]) Run(ctx context.Context, state *S) error {
	for _, e := range p.entries {
		if err := p.runStage(ctx, e, state); err != nil {
			return fmt.Errorf("stage %s: %w", e.stage.Name(), err)
		}
	}
	return nil
}

func (p *Pipeline[S]) runStage(ctx context.Context, e entry[S], state *S) error {
	prepared, err := e.stage.Prepare(ctx, state)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}

	var result any
	err = Retry(ctx, e.retry, func(attempt int) error {
		r, execErr := e.stage.Execute(ctx, prepared, attempt)
		if execErr != nil {
			return execErr
		}
		result = r
		return nil
	})
	if err != nil {
		return err
	}

	if err := e.stage.Finalize(state, prepared, result); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	return nil
}
