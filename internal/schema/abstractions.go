package schema

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Abstraction is a named concept extracted from the source tree, linked to
// the file indices that implement it.
type Abstraction struct {
	Name        string
	Description string
	Files       []int // sorted, deduplicated indices into the collected files
}

// ParseAbstractions validates a generator reply against the abstraction-list
// schema. Every entry must carry name, description, and file_indices; each
// index must resolve to an integer in [0, fileCount). Indices are stored
// deduplicated and sorted.
func ParseAbstractions(reply string, fileCount int) ([]Abstraction, error) {
	const schemaName = "abstractions"

	block, err := ExtractFencedYAML(reply)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, errf(schemaName, "", nil, "invalid YAML: %v", err)
	}
	list, ok := doc.([]any)
	if !ok {
		return nil, errf(schemaName, "", doc, "reply is not a list")
	}

	abstractions := make([]Abstraction, 0, len(list))
	for _, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, errf(schemaName, "", item, "entry is not a mapping")
		}

		name, ok := m["name"].(string)
		if !ok {
			return nil, errf(schemaName, "", item, "missing or non-string name")
		}
		description, ok := m["description"].(string)
		if !ok {
			return nil, errf(schemaName, name, item, "missing or non-string description")
		}
		rawIndices, ok := m["file_indices"].([]any)
		if !ok {
			return nil, errf(schemaName, name, m["file_indices"], "missing or non-list file_indices")
		}

		seen := make(map[int]bool, len(rawIndices))
		var files []int
		for _, raw := range rawIndices {
			idx, err := coerceIndex(raw)
			if err != nil {
				return nil, errf(schemaName, name, raw, "unparseable file index: %v", err)
			}
			if idx < 0 || idx >= fileCount {
				return nil, errf(schemaName, name, idx, "file index out of range: max index is %d", fileCount-1)
			}
			if !seen[idx] {
				seen[idx] = true
				files = append(files, idx)
			}
		}
		sort.Ints(files)

		// Block scalars ("name: |") carry a trailing newline.
		abstractions = append(abstractions, Abstraction{
			Name:        strings.TrimSpace(name),
			Description: strings.TrimSpace(description),
			Files:       files,
		})
	}

	return abstractions, nil
}
