package tutorial

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/julianshen/codetutor/internal/crawler"
	"github.com/julianshen/codetutor/internal/engine"
	"github.com/julianshen/codetutor/internal/llm"
	"github.com/julianshen/codetutor/internal/schema"
)

// WriteChapters generates one chapter per ordered abstraction. Chapters are
// written strictly in order: each prompt carries the full bodies of the
// chapters written before it, so a chapter can build on earlier material.
// Retry applies per chapter; an exhausted chapter fails the whole stage.
type WriteChapters struct {
	Gen   llm.Generator
	Retry engine.RetryPolicy
}

type chapterItem struct {
	num         int
	name        string
	description string
	fileContext string
	apiSection  string
	prev, next  string
}

type chaptersPrep struct {
	items       []chapterItem
	listing     string
	projectName string
	lang        string
	useCache    bool
}

func (s *WriteChapters) Name() string { return "write-chapters" }

func (s *WriteChapters) Prepare(ctx context.Context, state *Context) (any, error) {
	var listing []string
	for i, abstractionIndex := range state.ChapterOrder {
		name := state.Abstractions[abstractionIndex].Name
		listing = append(listing, fmt.Sprintf("%d. [%s](%s)", i+1, name, ChapterFilename(i+1, name)))
	}

	var items []chapterItem
	for i, abstractionIndex := range state.ChapterOrder {
		a := state.Abstractions[abstractionIndex]
		item := chapterItem{
			num:         i + 1,
			name:        a.Name,
			description: a.Description,
			fileContext: contentForIndices(state.Files, a.Files),
			apiSection:  apiCallSection(a, state.Files, state.HTTPCalls),
		}
		if i > 0 {
			item.prev = listing[i-1]
		}
		if i < len(state.ChapterOrder)-1 {
			item.next = listing[i+1]
		}
		items = append(items, item)
	}

	return chaptersPrep{
		items:       items,
		listing:     strings.Join(listing, "\n"),
		projectName: state.ProjectName,
		lang:        langName(state.Language),
		useCache:    state.UseCache,
	}, nil
}

// Execute is the batch sub-pipeline: a fold over the chapter items with the
// accumulated prior chapters as context. Stage-level retry must be Once;
// repeating the fold would duplicate the accumulator.
func (s *WriteChapters) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(chaptersPrep)
	fmt.Fprintf(os.Stderr, "tutorial: writing %d chapters...\n", len(p.items))

	var written []string
	for _, item := range p.items {
		previous := "This is the first chapter."
		if len(written) > 0 {
			previous = strings.Join(written, "\n---\n")
		}
		fileContext := item.fileContext
		if fileContext == "" {
			fileContext = "No specific code snippets provided for this abstraction."
		}

		prompt, err := renderPrompt(chapterTmpl, struct {
			Lang, ProjectName, AbstractionName, AbstractionDescription string
			ChapterNum                                                 int
			FullChapterListing, PrevChapter, NextChapter               string
			PreviousChapters, FileContext, APICallSection              string
		}{
			Lang: p.lang, ProjectName: p.projectName,
			AbstractionName: item.name, AbstractionDescription: item.description,
			ChapterNum:         item.num,
			FullChapterListing: p.listing, PrevChapter: item.prev, NextChapter: item.next,
			PreviousChapters: previous, FileContext: fileContext, APICallSection: item.apiSection,
		})
		if err != nil {
			return nil, err
		}

		fmt.Fprintf(os.Stderr, "tutorial: writing chapter %d: %s...\n", item.num, item.name)
		var body string
		err = engine.Retry(ctx, s.Retry, func(itemAttempt int) error {
			reply, genErr := s.Gen.Generate(ctx, prompt, p.useCache && itemAttempt == 0)
			if genErr != nil {
				return genErr
			}
			body = reply
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("chapter %d (%s): %w", item.num, item.name, err)
		}

		written = append(written, EnsureChapterHeading(body, item.num, item.name))
	}
	return written, nil
}

func (s *WriteChapters) Finalize(state *Context, prepared, result any) error {
	state.Chapters = result.([]string)
	return nil
}

// apiCallSection renders the HTTP-call analysis lines for the files backing
// one abstraction, or "" when none of its files had call analysis.
func apiCallSection(a schema.Abstraction, files []crawler.SourceFile, calls []schema.FileCalls) string {
	paths := map[string]bool{}
	for _, idx := range a.Files {
		if idx >= 0 && idx < len(files) {
			paths[files[idx].Path] = true
		}
	}

	var relevant []schema.FileCalls
	for _, fc := range calls {
		if paths[fc.Path] {
			relevant = append(relevant, fc)
		}
	}
	if len(relevant) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "API Call Information for files related to %q:\n", a.Name)
	for _, fc := range relevant {
		fmt.Fprintf(&b, "In file `%s`:\n", fc.Path)
		for _, call := range fc.Calls {
			fmt.Fprintf(&b, "- Function: `%s` calls API: `%s` (Method: %s)\n", call.Function, call.Endpoint, call.Method)
			if len(call.Parameters) > 0 {
				fmt.Fprintf(&b, "  Request Params: %v\n", call.Parameters)
			}
			if call.ResponseUsage != "" {
				fmt.Fprintf(&b, "  Response Usage: %s\n", call.ResponseUsage)
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
