package tutorial

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/julianshen/codetutor/internal/llm"
	"github.com/julianshen/codetutor/internal/schema"
)

// AnalyzeRelationships asks the generator for a project summary and the
// directed, labeled interactions between the identified abstractions.
type AnalyzeRelationships struct {
	Gen llm.Generator
}

type relationshipsPrep struct {
	prompt           string
	abstractionCount int
	useCache         bool
}

func (s *AnalyzeRelationships) Name() string { return "analyze-relationships" }

func (s *AnalyzeRelationships) Prepare(ctx context.Context, state *Context) (any, error) {
	var listing []string
	var info strings.Builder
	relevant := map[int]bool{}

	info.WriteString("Identified Abstractions:\n")
	for i, a := range state.Abstractions {
		indices := make([]string, len(a.Files))
		for j, idx := range a.Files {
			indices[j] = fmt.Sprint(idx)
			relevant[idx] = true
		}
		fmt.Fprintf(&info, "- Index %d: %s (Relevant file indices: [%s])\n  Description: %s\n",
			i, a.Name, strings.Join(indices, ", "), a.Description)
		listing = append(listing, fmt.Sprintf("%d # %s", i, a.Name))
	}

	indices := make([]int, 0, len(relevant))
	for idx := range relevant {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	info.WriteString("\nRelevant File Snippets (Referenced by Index and Path):\n")
	info.WriteString(contentForIndices(state.Files, indices))

	prompt, err := renderPrompt(relationshipsTmpl, struct {
		Lang, ProjectName, AbstractionListing, Context string
	}{langName(state.Language), state.ProjectName, strings.Join(listing, "\n"), info.String()})
	if err != nil {
		return nil, err
	}
	return relationshipsPrep{prompt: prompt, abstractionCount: len(state.Abstractions), useCache: state.UseCache}, nil
}

func (s *AnalyzeRelationships) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(relationshipsPrep)
	fmt.Fprintln(os.Stderr, "tutorial: analyzing relationships...")

	reply, err := s.Gen.Generate(ctx, p.prompt, p.useCache && attempt == 0)
	if err != nil {
		return nil, err
	}
	return schema.ParseRelationships(reply, p.abstractionCount)
}

func (s *AnalyzeRelationships) Finalize(state *Context, prepared, result any) error {
	analysis := result.(*schema.ProjectAnalysis)
	state.Summary = analysis.Summary
	state.Relationships = analysis.Relationships
	return nil
}
