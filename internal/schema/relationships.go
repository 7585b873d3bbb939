package schema

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Relationship is a directed, labeled edge between two abstractions.
type Relationship struct {
	From  int
	To    int
	Label string
}

// ProjectAnalysis is the validated output of the relationship stage: a
// project-level summary plus the interaction edges.
type ProjectAnalysis struct {
	Summary       string
	Relationships []Relationship
}

// ParseRelationships validates a generator reply against the relationship
// schema: a top-level mapping with a string summary and a relationships list
// whose from/to indices fall in [0, abstractionCount).
func ParseRelationships(reply string, abstractionCount int) (*ProjectAnalysis, error) {
	const schemaName = "relationships"

	block, err := ExtractFencedYAML(reply)
	if err != nil {
		return nil, err
	}

	var doc any
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, errf(schemaName, "", nil, "invalid YAML: %v", err)
	}
	m, ok := doc.(map[string]any)
	if !ok {
		return nil, errf(schemaName, "", doc, "reply is not a mapping")
	}

	summary, ok := m["summary"].(string)
	if !ok {
		return nil, errf(schemaName, "", m["summary"], "missing or non-string summary")
	}
	rawRels, ok := m["relationships"].([]any)
	if !ok {
		return nil, errf(schemaName, "", m["relationships"], "missing or non-list relationships")
	}

	rels := make([]Relationship, 0, len(rawRels))
	for _, raw := range rawRels {
		rm, ok := raw.(map[string]any)
		if !ok {
			return nil, errf(schemaName, "", raw, "relationship entry is not a mapping")
		}

		label, ok := rm["label"].(string)
		if !ok {
			return nil, errf(schemaName, "", raw, "missing or non-string label")
		}
		fromRaw, ok := rm["from_abstraction"]
		if !ok {
			return nil, errf(schemaName, "", raw, "missing from_abstraction")
		}
		toRaw, ok := rm["to_abstraction"]
		if !ok {
			return nil, errf(schemaName, "", raw, "missing to_abstraction")
		}

		from, err := coerceIndex(fromRaw)
		if err != nil {
			return nil, errf(schemaName, "", fromRaw, "unparseable from_abstraction: %v", err)
		}
		to, err := coerceIndex(toRaw)
		if err != nil {
			return nil, errf(schemaName, "", toRaw, "unparseable to_abstraction: %v", err)
		}
		if from < 0 || from >= abstractionCount || to < 0 || to >= abstractionCount {
			return nil, errf(schemaName, "", raw,
				"index out of range: from=%d to=%d, max index is %d", from, to, abstractionCount-1)
		}

		rels = append(rels, Relationship{From: from, To: to, Label: label})
	}

	return &ProjectAnalysis{
		Summary:       strings.TrimSpace(summary),
		Relationships: rels,
	}, nil
}
