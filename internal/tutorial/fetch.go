package tutorial

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianshen/codetutor/internal/crawler"
)

// FetchSource crawls the repository or local directory and stores the file
// set. It also derives the project name from the source when none was given.
type FetchSource struct {
	Collector crawler.Collector
}

func (s *FetchSource) Name() string { return "fetch-source" }

func (s *FetchSource) Prepare(ctx context.Context, state *Context) (any, error) {
	if state.ProjectName == "" {
		state.ProjectName = deriveProjectName(state.RepoURL, state.LocalDir)
	}
	return nil, nil
}

func (s *FetchSource) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	files, err := s.Collector.Collect(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "tutorial: fetched %d files\n", len(files))
	return files, nil
}

func (s *FetchSource) Finalize(state *Context, prepared, result any) error {
	state.Files = result.([]crawler.SourceFile)
	return nil
}

// deriveProjectName takes the last URL segment (minus .git) for remote
// sources, or the directory base name for local ones.
func deriveProjectName(repoURL, localDir string) string {
	if repoURL != "" {
		name := repoURL[strings.LastIndex(repoURL, "/")+1:]
		return strings.TrimSuffix(name, ".git")
	}
	abs, err := filepath.Abs(localDir)
	if err != nil {
		abs = localDir
	}
	return filepath.Base(abs)
}
