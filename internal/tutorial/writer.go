package tutorial

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteDocuments writes the assembled documents under dir, creating it if
// needed.
func WriteDocuments(dir string, docs []Document) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, doc := range docs {
		path := filepath.Join(dir, doc.Filename)
		if err := os.WriteFile(path, []byte(doc.Content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", doc.Filename, err)
		}
		fmt.Fprintf(os.Stderr, "tutorial:   wrote %s\n", path)
	}
	return nil
}
