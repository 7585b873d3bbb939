package tutorial

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/julianshen/codetutor/internal/llm"
	"github.com/julianshen/codetutor/internal/schema"
)

// OrderChapters asks the generator for the pedagogical order to explain the
// abstractions in. The reply must be a strict permutation of the abstraction
// indices.
type OrderChapters struct {
	Gen llm.Generator
}

type orderPrep struct {
	prompt           string
	abstractionCount int
	useCache         bool
}

func (s *OrderChapters) Name() string { return "order-chapters" }

func (s *OrderChapters) Prepare(ctx context.Context, state *Context) (any, error) {
	var listing []string
	for i, a := range state.Abstractions {
		listing = append(listing, fmt.Sprintf("- %d # %s", i, a.Name))
	}

	var info strings.Builder
	fmt.Fprintf(&info, "Project Summary:\n%s\n\n", state.Summary)
	info.WriteString("Relationships (Indices refer to abstractions above):\n")
	for _, rel := range state.Relationships {
		fmt.Fprintf(&info, "- From %d (%s) to %d (%s): %s\n",
			rel.From, state.Abstractions[rel.From].Name,
			rel.To, state.Abstractions[rel.To].Name, rel.Label)
	}

	prompt, err := renderPrompt(orderTmpl, struct {
		Lang, ProjectName, AbstractionListing, Context string
	}{langName(state.Language), state.ProjectName, strings.Join(listing, "\n"), info.String()})
	if err != nil {
		return nil, err
	}
	return orderPrep{prompt: prompt, abstractionCount: len(state.Abstractions), useCache: state.UseCache}, nil
}

func (s *OrderChapters) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(orderPrep)
	fmt.Fprintln(os.Stderr, "tutorial: determining chapter order...")

	reply, err := s.Gen.Generate(ctx, p.prompt, p.useCache && attempt == 0)
	if err != nil {
		return nil, err
	}
	order, err := schema.ParseChapterOrder(reply, p.abstractionCount)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "tutorial: chapter order: %v\n", order)
	return order, nil
}

func (s *OrderChapters) Finalize(state *Context, prepared, result any) error {
	state.ChapterOrder = result.([]int)
	return nil
}
