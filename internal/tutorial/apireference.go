package tutorial

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/julianshen/codetutor/internal/llm"
	"github.com/julianshen/codetutor/internal/schema"
)

// WriteAPIReference turns the endpoint analysis into an api_reference.md
// document. With no endpoint data, or when generation fails, the reference
// stays empty and the pipeline continues.
type WriteAPIReference struct {
	Gen llm.Generator
}

type apiReferencePrep struct {
	prompt   string
	useCache bool
}

func (s *WriteAPIReference) Name() string { return "write-api-reference" }

func (s *WriteAPIReference) Prepare(ctx context.Context, state *Context) (any, error) {
	if len(state.Endpoints) == 0 {
		return apiReferencePrep{}, nil
	}
	prompt, err := renderPrompt(apiReferenceTmpl, struct {
		Lang, ProjectName, EndpointData string
	}{langName(state.Language), state.ProjectName, endpointData(state.Endpoints)})
	if err != nil {
		return nil, err
	}
	return apiReferencePrep{prompt: prompt, useCache: state.UseCache}, nil
}

func (s *WriteAPIReference) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(apiReferencePrep)
	if p.prompt == "" {
		return "", nil
	}

	fmt.Fprintln(os.Stderr, "tutorial: generating API reference...")
	reply, err := s.Gen.Generate(ctx, p.prompt, p.useCache && attempt == 0)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		log.Printf("WARNING: API reference generation failed: %v", err)
		return "", nil
	}
	return strings.TrimSpace(reply), nil
}

func (s *WriteAPIReference) Finalize(state *Context, prepared, result any) error {
	state.APIReference = result.(string)
	return nil
}

// endpointData flattens the endpoint analysis into the plain-text listing the
// API reference prompt embeds.
func endpointData(files []schema.FileEndpoints) string {
	var b strings.Builder
	for _, fe := range files {
		fmt.Fprintf(&b, "Endpoints from file: %s\n", fe.Path)
		for _, ep := range fe.Endpoints {
			fmt.Fprintf(&b, "- Method: %s, Path: %s\n", ep.Method, ep.Route)
			if ep.Summary != "" {
				fmt.Fprintf(&b, "  Summary: %s\n", ep.Summary)
			}
			if len(ep.PathParams) > 0 {
				fmt.Fprintf(&b, "  Path Params: %v\n", ep.PathParams)
			}
			if len(ep.QueryParams) > 0 {
				fmt.Fprintf(&b, "  Query Params: %v\n", ep.QueryParams)
			}
			if ep.RequestBody != nil {
				fmt.Fprintf(&b, "  Request Body: %v\n", ep.RequestBody)
			}
			if ep.Response != nil {
				fmt.Fprintf(&b, "  Response Model: %v\n", ep.Response)
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
