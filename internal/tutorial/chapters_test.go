package tutorial

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/codetutor/internal/crawler"
	"github.com/julianshen/codetutor/internal/engine"
	"github.com/julianshen/codetutor/internal/schema"
)

// scriptGen records prompts and cache flags and answers via fn.
type scriptGen struct {
	prompts []string
	flags   []bool
	fn      func(call int, prompt string) (string, error)
}

func (g *scriptGen) Generate(ctx context.Context, prompt string, cacheEligible bool) (string, error) {
	call := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	g.flags = append(g.flags, cacheEligible)
	return g.fn(call, prompt)
}

func chapterState() *Context {
	return &Context{
		ProjectName: "demo",
		UseCache:    true,
		Files: []crawler.SourceFile{
			{Path: "engine.go", Content: "package engine"},
			{Path: "cache.go", Content: "package cache"},
		},
		Abstractions: []schema.Abstraction{
			{Name: "Engine", Description: "Runs things.", Files: []int{0}},
			{Name: "Cache", Description: "Remembers things.", Files: []int{1}},
		},
		ChapterOrder: []int{0, 1},
	}
}

func runWriteChapters(t *testing.T, state *Context, stage *WriteChapters) error {
	t.Helper()
	ctx := context.Background()
	prepared, err := stage.Prepare(ctx, state)
	require.NoError(t, err)
	result, err := stage.Execute(ctx, prepared, 0)
	if err != nil {
		return err
	}
	return stage.Finalize(state, prepared, result)
}

func TestWriteChaptersAccumulatesPriorChapters(t *testing.T) {
	gen := &scriptGen{fn: func(call int, prompt string) (string, error) {
		return fmt.Sprintf("# Chapter %d: X\n\nBody of chapter %d.", call+1, call+1), nil
	}}
	state := chapterState()

	require.NoError(t, runWriteChapters(t, state, &WriteChapters{Gen: gen, Retry: engine.Once}))
	require.Len(t, state.Chapters, 2)

	assert.Contains(t, gen.prompts[0], "This is the first chapter.")
	assert.NotContains(t, gen.prompts[0], "Body of chapter 1.")
	assert.Contains(t, gen.prompts[1], "Body of chapter 1.",
		"second prompt carries the first chapter's body")
	assert.NotContains(t, gen.prompts[1], "This is the first chapter.")
}

func TestWriteChaptersPrevNextReferences(t *testing.T) {
	gen := &scriptGen{fn: func(call int, prompt string) (string, error) {
		return "# Chapter 1: X\n\nBody.", nil
	}}
	state := chapterState()

	require.NoError(t, runWriteChapters(t, state, &WriteChapters{Gen: gen, Retry: engine.Once}))

	assert.NotContains(t, gen.prompts[0], "Previous chapter:")
	assert.Contains(t, gen.prompts[0], "Next chapter: 2. [Cache](02_cache.md)")
	assert.Contains(t, gen.prompts[1], "Previous chapter: 1. [Engine](01_engine.md)")
	assert.NotContains(t, gen.prompts[1], "Next chapter:")
}

func TestWriteChaptersNormalizesHeadings(t *testing.T) {
	gen := &scriptGen{fn: func(call int, prompt string) (string, error) {
		return "No heading here, just prose.", nil
	}}
	state := chapterState()

	require.NoError(t, runWriteChapters(t, state, &WriteChapters{Gen: gen, Retry: engine.Once}))

	assert.Contains(t, state.Chapters[0], "# Chapter 1: Engine")
	assert.Contains(t, state.Chapters[1], "# Chapter 2: Cache")
}

func TestWriteChaptersRetriesPerItemWithoutCache(t *testing.T) {
	calls := 0
	gen := &scriptGen{fn: func(call int, prompt string) (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("transient")
		}
		return "# Chapter 1: X\n\nBody.", nil
	}}
	state := chapterState()
	state.ChapterOrder = []int{0}

	stage := &WriteChapters{Gen: gen, Retry: engine.RetryPolicy{MaxAttempts: 3}}
	require.NoError(t, runWriteChapters(t, state, stage))

	require.Len(t, gen.flags, 3)
	assert.True(t, gen.flags[0], "first attempt may use the cache")
	assert.False(t, gen.flags[1], "retries must bypass the cache")
	assert.False(t, gen.flags[2])
}

func TestWriteChaptersExhaustedItemFailsStage(t *testing.T) {
	gen := &scriptGen{fn: func(call int, prompt string) (string, error) {
		return "", errors.New("always failing")
	}}
	state := chapterState()

	err := runWriteChapters(t, state, &WriteChapters{Gen: gen, Retry: engine.RetryPolicy{MaxAttempts: 2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chapter 1 (Engine)")
	assert.Empty(t, state.Chapters, "no chapters committed on failure")
}

func TestWriteChaptersIncludesHTTPCallContext(t *testing.T) {
	gen := &scriptGen{fn: func(call int, prompt string) (string, error) {
		return "# Chapter 1: X\n\nBody.", nil
	}}
	state := chapterState()
	state.Files[0].Path = "app.ts"
	state.HTTPCalls = []schema.FileCalls{
		{Path: "app.ts", Calls: []schema.HTTPCall{
			{Function: "loadUser", Endpoint: "/api/users", Method: "GET", ResponseUsage: "fills the profile"},
		}},
	}

	require.NoError(t, runWriteChapters(t, state, &WriteChapters{Gen: gen, Retry: engine.Once}))

	assert.Contains(t, gen.prompts[0], "API Call Information")
	assert.Contains(t, gen.prompts[0], "`loadUser` calls API: `/api/users` (Method: GET)")
	assert.NotContains(t, gen.prompts[1], "API Call Information",
		"second chapter's files had no call analysis")
}
