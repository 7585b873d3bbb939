package tutorial

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/julianshen/codetutor/internal/crawler"
	"github.com/julianshen/codetutor/internal/llm"
	"github.com/julianshen/codetutor/internal/schema"
)

// AnalyzeHTTPCalls asks the generator, per frontend file, which HTTP calls
// the file makes. Analysis is best-effort: a malformed reply for one file is
// logged and skipped, never fatal.
type AnalyzeHTTPCalls struct {
	Gen llm.Generator
}

type httpCallsPrep struct {
	files       []crawler.SourceFile
	projectName string
	lang        string
	useCache    bool
}

func (s *AnalyzeHTTPCalls) Name() string { return "analyze-http-calls" }

func (s *AnalyzeHTTPCalls) Prepare(ctx context.Context, state *Context) (any, error) {
	var frontend []crawler.SourceFile
	for _, f := range state.Files {
		if isFrontendFile(f.Path) {
			frontend = append(frontend, f)
		}
	}
	return httpCallsPrep{
		files:       frontend,
		projectName: state.ProjectName,
		lang:        langName(state.Language),
		useCache:    state.UseCache,
	}, nil
}

func (s *AnalyzeHTTPCalls) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(httpCallsPrep)
	if len(p.files) == 0 {
		fmt.Fprintln(os.Stderr, "tutorial: no frontend files to analyze for HTTP calls")
		return []schema.FileCalls(nil), nil
	}

	fmt.Fprintf(os.Stderr, "tutorial: analyzing HTTP calls in %d frontend files...\n", len(p.files))
	var results []schema.FileCalls
	for _, f := range p.files {
		prompt, err := renderPrompt(httpCallsTmpl, struct {
			Lang, ProjectName, FilePath, FenceLang, Content string
		}{p.lang, p.projectName, f.Path, fenceLang(f.Path), f.Content})
		if err != nil {
			return nil, err
		}

		reply, err := s.Gen.Generate(ctx, prompt, p.useCache && attempt == 0)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			log.Printf("WARNING: HTTP call analysis for %s failed: %v", f.Path, err)
			continue
		}
		calls, err := schema.ParseHTTPCalls(reply)
		if err != nil {
			log.Printf("WARNING: unparseable HTTP call reply for %s: %v", f.Path, err)
			continue
		}
		if len(calls) > 0 {
			results = append(results, schema.FileCalls{Path: f.Path, Calls: calls})
		}
	}
	return results, nil
}

func (s *AnalyzeHTTPCalls) Finalize(state *Context, prepared, result any) error {
	state.HTTPCalls = result.([]schema.FileCalls)
	return nil
}

func isFrontendFile(path string) bool {
	for _, ext := range []string{".js", ".jsx", ".ts", ".tsx"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func fenceLang(path string) string {
	if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") {
		return "typescript"
	}
	return "javascript"
}

// AnalyzeEndpoints extracts served HTTP endpoint descriptions from Python
// files, with the same best-effort per-file policy as AnalyzeHTTPCalls.
type AnalyzeEndpoints struct {
	Gen llm.Generator
}

type endpointsPrep struct {
	files       []crawler.SourceFile
	projectName string
	lang        string
	useCache    bool
}

func (s *AnalyzeEndpoints) Name() string { return "analyze-endpoints" }

func (s *AnalyzeEndpoints) Prepare(ctx context.Context, state *Context) (any, error) {
	var python []crawler.SourceFile
	for _, f := range state.Files {
		if strings.HasSuffix(f.Path, ".py") {
			python = append(python, f)
		}
	}
	return endpointsPrep{
		files:       python,
		projectName: state.ProjectName,
		lang:        langName(state.Language),
		useCache:    state.UseCache,
	}, nil
}

func (s *AnalyzeEndpoints) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(endpointsPrep)
	if len(p.files) == 0 {
		fmt.Fprintln(os.Stderr, "tutorial: no Python files to analyze for endpoints")
		return []schema.FileEndpoints(nil), nil
	}

	fmt.Fprintf(os.Stderr, "tutorial: analyzing endpoints in %d Python files...\n", len(p.files))
	var results []schema.FileEndpoints
	for _, f := range p.files {
		prompt, err := renderPrompt(endpointsTmpl, struct {
			Lang, ProjectName, FilePath, Content string
		}{p.lang, p.projectName, f.Path, f.Content})
		if err != nil {
			return nil, err
		}

		reply, err := s.Gen.Generate(ctx, prompt, p.useCache && attempt == 0)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			log.Printf("WARNING: endpoint analysis for %s failed: %v", f.Path, err)
			continue
		}
		endpoints, err := schema.ParseEndpoints(reply)
		if err != nil {
			log.Printf("WARNING: unparseable endpoint reply for %s: %v", f.Path, err)
			continue
		}
		if len(endpoints) > 0 {
			results = append(results, schema.FileEndpoints{Path: f.Path, Endpoints: endpoints})
		}
	}
	return results, nil
}

func (s *AnalyzeEndpoints) Finalize(state *Context, prepared, result any) error {
	state.Endpoints = result.([]schema.FileEndpoints)
	return nil
}
