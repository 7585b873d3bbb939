package tutorial

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// CombineTutorial assembles index.md, the optional API reference, and the
// chapter files, then writes them all under <output dir>/<project name>.
// Assembly happens in Prepare so the write in Execute is all-or-nothing with
// respect to document construction.
type CombineTutorial struct{}

type combinePrep struct {
	outputPath string
	docs       []Document
}

func (s *CombineTutorial) Name() string { return "combine-tutorial" }

func (s *CombineTutorial) Prepare(ctx context.Context, state *Context) (any, error) {
	return combinePrep{
		outputPath: filepath.Join(state.OutputDir, state.ProjectName),
		docs:       BuildDocuments(state),
	}, nil
}

func (s *CombineTutorial) Execute(ctx context.Context, prepared any, attempt int) (any, error) {
	p := prepared.(combinePrep)
	fmt.Fprintf(os.Stderr, "tutorial: combining tutorial into %s\n", p.outputPath)
	if err := WriteDocuments(p.outputPath, p.docs); err != nil {
		return nil, err
	}
	return p.outputPath, nil
}

func (s *CombineTutorial) Finalize(state *Context, prepared, result any) error {
	state.OutputPath = result.(string)
	return nil
}
