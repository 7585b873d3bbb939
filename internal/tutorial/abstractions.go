package tutorial

import (
	"context"
	"fmt"
	"os"

	"github.com/julianshen/codetutor/internal/llm"
	"github.com/julianshen/codetutor/internal/schema"
)

// IdentifyAbstractions asks the generator for the project's core
// abstractions and validates the YAML reply against the abstraction schema.
type IdentifyAbstractions struct {
	Gen llm.Generator
}

type abstractionsPrep struct {
	prompt    string
	fileCount int
	useCache  bool
}

func (s *IdentifyAbstractions) Name() string { return "identify-abstractions" }

func (s *IdentifyAbstractions) Prepare(ctx context.Context, state *Context) (any, error) {
	maxAbstractions := state.MaxAbstractions
	if maxAbstractions <= 0 {
		maxAbstractions = 10
	}
	prompt, err := renderPrompt(abstractionsTmpl, struct {
		Lang, ProjectName, Context, FileListing string
		MaxAbstractions                         int
	}{
		Lang:            langName(state.Language),
		ProjectName:     state.ProjectName,
		Context:         filesContext(state.Files),
		FileListing:     fileListing(state.Files),
		MaxAbstractions: maxAbstractions,
	})
	if err != nil {
		return nil, err
	}
	return abstractionsPrep{prompt: prompt, fileCount: len(state.Files), useCache: state.UseCache}, nil
}

func (s *IdentifyAbstractions) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(abstractionsPrep)
	fmt.Fprintln(os.Stderr, "tutorial: identifying abstractions...")

	reply, err := s.Gen.Generate(ctx, p.prompt, p.useCache && attempt == 0)
	if err != nil {
		return nil, err
	}
	abstractions, err := schema.ParseAbstractions(reply, p.fileCount)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "tutorial: identified %d abstractions\n", len(abstractions))
	return abstractions, nil
}

func (s *IdentifyAbstractions) Finalize(state *Context, prepared, result any) error {
	state.Abstractions = result.([]schema.Abstraction)
	return nil
}
