package schema

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// ParseChapterOrder validates a generator reply against the chapter-order
// schema: a list of indices that must form a permutation of
// [0, abstractionCount) — every index in range, no duplicates, none missing.
func ParseChapterOrder(reply string, abstractionCount int) ([]int, error) {
	const schemaName = "chapter order"

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

	order := make([]int, 0, len(list))
	seen := make(map[int]bool, len(list))
	for _, raw := range list {
		idx, err := coerceIndex(raw)
		if err != nil {
			return nil, errf(schemaName, "", raw, "unparseable index: %v", err)
		}
		if idx < 0 || idx >= abstractionCount {
			return nil, errf(schemaName, "", idx, "index out of range: max index is %d", abstractionCount-1)
		}
		if seen[idx] {
			return nil, errf(schemaName, "", idx, "duplicate index")
		}
		seen[idx] = true
		order = append(order, idx)
	}

	if len(order) != abstractionCount {
		var missing []int
		for i := 0; i < abstractionCount; i++ {
			if !seen[i] {
				missing = append(missing, i)
			}
		}
		sort.Ints(missing)
		return nil, errf(schemaName, "", missing,
			"length mismatch: got %d entries for %d abstractions, missing indices", len(order), abstractionCount)
	}

	return order, nil
}
