package tutorial

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/codetutor/internal/schema"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "cache", "cache"},
		{"uppercase", "QueryProcessing", "queryprocessing"},
		{"spaces", "Query Processing", "query_processing"},
		{"trailing punctuation", "Cache!", "cache"},
		{"question mark", "Cache?", "cache"},
		{"mixed runs", "HTTP -- Client", "http_client"},
		{"digits", "OAuth2 Flow", "oauth2_flow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeName(tt.in))
		})
	}
}

func TestChapterFilenameDisambiguatesByPosition(t *testing.T) {
	// Identical sanitized names stay distinct via the position prefix.
	assert.Equal(t, "01_cache.md", ChapterFilename(1, "Cache!"))
	assert.Equal(t, "02_cache.md", ChapterFilename(2, "Cache?"))
	assert.Equal(t, "10_query_processing.md", ChapterFilename(10, "Query Processing"))
}

func TestEnsureChapterHeading(t *testing.T) {
	t.Run("correct heading kept", func(t *testing.T) {
		body := "# Chapter 2: Cache\n\nSome text."
		assert.Equal(t, body, EnsureChapterHeading(body, 2, "Cache"))
	})

	t.Run("wrong heading replaced", func(t *testing.T) {
		got := EnsureChapterHeading("# Caching Layer\n\nSome text.", 2, "Cache")
		assert.True(t, strings.HasPrefix(got, "# Chapter 2: Cache\n"))
		assert.Contains(t, got, "Some text.")
		assert.NotContains(t, got, "Caching Layer")
	})

	t.Run("missing heading prepended", func(t *testing.T) {
		got := EnsureChapterHeading("Just prose, no heading.", 1, "Intro")
		assert.True(t, strings.HasPrefix(got, "# Chapter 1: Intro\n\n"))
		assert.Contains(t, got, "Just prose, no heading.")
	})
}

func TestBuildDiagram(t *testing.T) {
	abstractions := []schema.Abstraction{
		{Name: `Query "Engine"`},
		{Name: "Cache"},
	}
	relationships := []schema.Relationship{
		{From: 0, To: 1, Label: "stores\nresults"},
	}

	diagram := BuildDiagram(abstractions, relationships)
	lines := strings.Split(diagram, "\n")
	require.Equal(t, 4, len(lines))
	assert.Equal(t, "flowchart TD", lines[0])
	assert.Equal(t, `    A0["Query Engine"]`, lines[1], "quotes stripped from node label")
	assert.Equal(t, `    A1["Cache"]`, lines[2])
	assert.Equal(t, `    A0 -- "stores results" --> A1`, lines[3], "newline flattened in edge label")
}

func TestBuildDiagramTruncatesLongEdgeLabels(t *testing.T) {
	abstractions := []schema.Abstraction{{Name: "A"}, {Name: "B"}}
	relationships := []schema.Relationship{
		{From: 0, To: 1, Label: strings.Repeat("x", 40)},
	}

	diagram := BuildDiagram(abstractions, relationships)
	want := `    A0 -- "` + strings.Repeat("x", 27) + `..." --> A1`
	assert.Contains(t, diagram, want)
}

func TestBuildDiagramMultibyteEdgeLabels(t *testing.T) {
	abstractions := []schema.Abstraction{{Name: "A"}, {Name: "B"}}
	relationships := []schema.Relationship{
		{From: 0, To: 1, Label: strings.Repeat("管", 15)},
	}

	// 15 runes is under the limit even though it is 45 bytes.
	diagram := BuildDiagram(abstractions, relationships)
	assert.Contains(t, diagram, `A0 -- "`+strings.Repeat("管", 15)+`" --> A1`)

	relationships[0].Label = "x" + strings.Repeat("管", 34)
	diagram = BuildDiagram(abstractions, relationships)
	assert.Contains(t, diagram, `A0 -- "x`+strings.Repeat("管", 26)+`..." --> A1`)
	assert.True(t, utf8.ValidString(diagram))
}

func TestBuildDocuments(t *testing.T) {
	state := &Context{
		ProjectName: "demo",
		RepoURL:     "https://github.com/acme/demo",
		Summary:     "A **demo** project.",
		Abstractions: []schema.Abstraction{
			{Name: "Engine"},
			{Name: "Cache"},
		},
		Relationships: []schema.Relationship{{From: 0, To: 1, Label: "Uses"}},
		ChapterOrder:  []int{1, 0},
		Chapters: []string{
			"# Chapter 1: Cache\n\nBody one.",
			"# Chapter 2: Engine\n\nBody two.",
		},
		APIReference: "# API Reference for demo\n\nEndpoints.",
	}

	docs := BuildDocuments(state)
	require.Len(t, docs, 4)

	byName := map[string]string{}
	for _, d := range docs {
		byName[d.Filename] = d.Content
	}

	index := byName["index.md"]
	require.NotEmpty(t, index)
	assert.Contains(t, index, "# Tutorial: demo")
	assert.Contains(t, index, "A **demo** project.")
	assert.Contains(t, index, "**Source Repository:** [https://github.com/acme/demo](https://github.com/acme/demo)")
	assert.Contains(t, index, "[API Reference](api_reference.md)")
	assert.Contains(t, index, "```mermaid\nflowchart TD")
	assert.Contains(t, index, "1. [Cache](01_cache.md)")
	assert.Contains(t, index, "2. [Engine](02_engine.md)")
	assert.Contains(t, index, "Generated by [codetutor]")

	assert.Equal(t, "# API Reference for demo\n\nEndpoints.", byName["api_reference.md"])

	chapter := byName["01_cache.md"]
	assert.True(t, strings.HasPrefix(chapter, "# Chapter 1: Cache"))
	assert.True(t, strings.HasSuffix(chapter, footer), "chapter carries the footer")
	assert.Contains(t, byName["02_engine.md"], "Body two.")
}

func TestBuildDocumentsOmitsOptionalSections(t *testing.T) {
	state := &Context{
		ProjectName:  "local",
		Summary:      "Summary.",
		Abstractions: []schema.Abstraction{{Name: "Core"}},
		ChapterOrder: []int{0},
		Chapters:     []string{"# Chapter 1: Core\n\nBody."},
	}

	docs := BuildDocuments(state)
	require.Len(t, docs, 2)
	index := docs[0].Content
	assert.NotContains(t, index, "Source Repository", "no repo link for local crawls")
	assert.NotContains(t, index, "api_reference.md", "no API reference link without content")
}
