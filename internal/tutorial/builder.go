package tutorial

import (
	"fmt"
	"strings"

	"github.com/julianshen/codetutor/internal/schema"
)

const footer = "---\n\nGenerated by [codetutor](https://github.com/julianshen/codetutor)"

const maxEdgeLabelLen = 30

// sanitizeName lowercases the chapter name and replaces every
// non-alphanumeric rune with an underscore, giving stable filesystem-safe
// filenames for any generated (possibly translated) name. Underscore runs
// are collapsed and the ends trimmed, so "Cache!" and "Cache?" both become
// "cache".
func sanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}

// ChapterFilename names the chapter file for a 1-based position. Positions
// are unique within a run, so colliding sanitized names stay distinct.
func ChapterFilename(position int, name string) string {
	return fmt.Sprintf("%02d_%s.md", position, sanitizeName(name))
}

// EnsureChapterHeading guarantees the chapter body starts with the exact
// "# Chapter N: Name" heading: a present-but-wrong first heading is replaced,
// a missing one is prepended.
func EnsureChapterHeading(content string, num int, name string) string {
	content = strings.TrimSpace(content)
	heading := fmt.Sprintf("# Chapter %d: %s", num, name)
	if strings.HasPrefix(content, fmt.Sprintf("# Chapter %d", num)) {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[0]), "#") {
		lines[0] = heading
		return strings.Join(lines, "\n")
	}
	return heading + "\n\n" + content
}

// BuildDiagram renders the abstraction graph as a mermaid flowchart: one
// node per abstraction, one labeled edge per relationship.
func BuildDiagram(abstractions []schema.Abstraction, relationships []schema.Relationship) string {
	lines := []string{"flowchart TD"}
	for i, a := range abstractions {
		label := strings.ReplaceAll(a.Name, `"`, "")
		lines = append(lines, fmt.Sprintf(`    A%d["%s"]`, i, label))
	}
	for _, rel := range relationships {
		lines = append(lines, fmt.Sprintf(`    A%d -- "%s" --> A%d`, rel.From, edgeLabel(rel.Label), rel.To))
	}
	return strings.Join(lines, "\n")
}

// edgeLabel strips quotes and newlines from a relationship label and
// truncates it so the diagram stays readable. Truncation counts runes, not
// bytes, so translated labels are never split mid-character.
func edgeLabel(label string) string {
	label = strings.ReplaceAll(label, `"`, "")
	label = strings.ReplaceAll(label, "\n", " ")
	runes := []rune(label)
	if len(runes) > maxEdgeLabelLen {
		label = string(runes[:maxEdgeLabelLen-3]) + "..."
	}
	return label
}

// Document is one output file of the assembled tutorial.
type Document struct {
	Filename string
	Content  string
}

// BuildDocuments assembles the final document set: index.md, the optional
// API reference, and one file per chapter with the footer appended.
func BuildDocuments(state *Context) []Document {
	var docs []Document

	var index strings.Builder
	fmt.Fprintf(&index, "# Tutorial: %s\n\n", state.ProjectName)
	fmt.Fprintf(&index, "%s\n\n", state.Summary)
	if state.RepoURL != "" {
		fmt.Fprintf(&index, "**Source Repository:** [%s](%s)\n\n", state.RepoURL, state.RepoURL)
	}
	if strings.TrimSpace(state.APIReference) != "" {
		index.WriteString("## API Reference\n\n")
		index.WriteString("See the [API Reference](api_reference.md) for details on backend endpoints.\n\n")
		docs = append(docs, Document{Filename: "api_reference.md", Content: state.APIReference})
	}
	index.WriteString("## Codebase Abstractions Diagram\n\n")
	index.WriteString("```mermaid\n")
	index.WriteString(BuildDiagram(state.Abstractions, state.Relationships))
	index.WriteString("\n```\n\n")
	index.WriteString("## Chapters\n\n")

	for i, abstractionIndex := range state.ChapterOrder {
		if i >= len(state.Chapters) {
			break
		}
		name := state.Abstractions[abstractionIndex].Name
		filename := ChapterFilename(i+1, name)
		fmt.Fprintf(&index, "%d. [%s](%s)\n", i+1, name, filename)

		content := state.Chapters[i]
		if !strings.HasSuffix(content, "\n\n") {
			content += "\n\n"
		}
		docs = append(docs, Document{Filename: filename, Content: content + footer})
	}
	fmt.Fprintf(&index, "\n\n%s", footer)

	return append([]Document{{Filename: "index.md", Content: index.String()}}, docs...)
}
