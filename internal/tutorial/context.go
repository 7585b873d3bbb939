// Package tutorial implements the codebase-to-tutorial pipeline: fetch the
// source tree, analyze it with an LLM through validated YAML schemas, write
// one chapter per abstraction, and assemble the final document set.
package tutorial

import (
	"fmt"
	"strings"

	"github.com/julianshen/codetutor/internal/crawler"
	"github.com/julianshen/codetutor/internal/schema"
)

// Context is the shared state threaded through the pipeline. Each stage only
// adds fields; nothing written by an earlier stage is mutated later.
type Context struct {
	ProjectName     string
	RepoURL         string
	LocalDir        string
	Language        string
	UseCache        bool
	MaxAbstractions int
	OutputDir       string

	Files         []crawler.SourceFile
	HTTPCalls     []schema.FileCalls
	Endpoints     []schema.FileEndpoints
	APIReference  string
	Abstractions  []schema.Abstraction
	Summary       string
	Relationships []schema.Relationship
	ChapterOrder  []int
	Chapters      []string
	OutputPath    string
}

// fileListing renders the "- idx # path" lines the prompts use so the model
// can echo indices back with a path comment.
func fileListing(files []crawler.SourceFile) string {
	var b strings.Builder
	for i, f := range files {
		fmt.Fprintf(&b, "- %d # %s\n", i, f.Path)
	}
	return strings.TrimRight(b.String(), "\n")
}

// filesContext renders every file with its index header for the abstraction
// identification prompt.
func filesContext(files []crawler.SourceFile) string {
	var b strings.Builder
	for i, f := range files {
		fmt.Fprintf(&b, "--- File Index %d: %s ---\n%s\n\n", i, f.Path, f.Content)
	}
	return b.String()
}

// contentForIndices renders the files at the given indices, each under a
// "--- File: idx # path ---" header. Out-of-range indices are skipped.
func contentForIndices(files []crawler.SourceFile, indices []int) string {
	var parts []string
	for _, i := range indices {
		if i < 0 || i >= len(files) {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- File: %d # %s ---\n%s", i, files[i].Path, files[i].Content))
	}
	return strings.Join(parts, "\n\n")
}
