package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testState struct {
	log    []string
	values map[string]int
}

// recordingStage logs its lifecycle calls and fails Execute a configurable
// number of times before succeeding.
type recordingStage struct {
	name     string
	failures int
	attempts []int
}

func (s *recordingStage) Name() string { return s.name }

func (s *recordingStage) Prepare(_ context.Context, st *testState) (any, error) {
	st.log = append(st.log, s.name+":prepare")
	return s.name, nil
}

func (s *recordingStage) Execute(_ context.Context, prepared any, attempt int) (any, error) {
	s.attempts = append(s.attempts, attempt)
	if attempt < s.failures {
		return nil, fmt.Errorf("simulated failure on attempt %d", attempt)
	}
	return prepared.(string) + ":done", nil
}

func (s *recordingStage) Finalize(st *testState, _ any, result any) error {
	st.log = append(st.log, s.name+":finalize")
	if st.values == nil {
		st.values = map[string]int{}
	}
	st.values[result.(string)] = len(st.log)
	return nil
}

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	var attempts []int
	err := Retry(context.Background(), RetryPolicy{MaxAttempts: 3}, func(attempt int) error {
		attempts = append(attempts, attempt)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0}, attempts)
}

func TestRetryConsumesBudgetThenFails(t *testing.T) {
	sentinel := errors.New("always broken")
	var attempts []int
	err := Retry(context.Background(), RetryPolicy{MaxAttempts: 4}, func(attempt int) error {
		attempts = append(attempts, attempt)
		return sentinel
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "4 attempts")
	assert.Equal(t, []int{0, 1, 2, 3}, attempts)
}

func TestRetryZeroAttemptsTreatedAsOne(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), RetryPolicy{}, func(int) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, RetryPolicy{MaxAttempts: 3}, func(int) error {
		t.Fatal("fn must not run after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipelineRunsStagesInOrder(t *testing.T) {
	a := &recordingStage{name: "a"}
	b := &recordingStage{name: "b"}

	st := &testState{}
	err := New[testState]().
		Add(a, Once).
		Add(b, Once).
		Run(context.Background(), st)
	require.NoError(t, err)

	// b's prepare must not run before a's finalize committed.
	assert.Equal(t, []string{"a:prepare", "a:finalize", "b:prepare", "b:finalize"}, st.log)
}

func TestPipelineRetriesExecuteOnly(t *testing.T) {
	s := &recordingStage{name: "flaky", failures: 2}

	st := &testState{}
	err := New[testState]().
		Add(s, RetryPolicy{MaxAttempts: 3}).
		Run(context.Background(), st)
	require.NoError(t, err)

	// Execute saw attempts 0,1,2; Prepare and Finalize ran exactly once.
	assert.Equal(t, []int{0, 1, 2}, s.attempts)
	assert.Equal(t, []string{"flaky:prepare", "flaky:finalize"}, st.log)
}

func TestPipelineAbortsOnExhaustedStage(t *testing.T) {
	broken := &recordingStage{name: "broken", failures: 99}
	after := &recordingStage{name: "after"}

	st := &testState{}
	err := New[testState]().
		Add(broken, RetryPolicy{MaxAttempts: 2}).
		Add(after, Once).
		Run(context.Background(), st)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stage broken")

	// The failed stage never finalized and the next stage never started.
	assert.Equal(t, []string{"broken:prepare"}, st.log)
	assert.Empty(t, after.attempts)
}
