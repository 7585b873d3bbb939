package schema

import "strings"

const yamlFence = "```yaml"

// ExtractFencedYAML locates the YAML block inside a generator reply. It
// prefers a ```yaml fence; when none is present it falls back to the first
// fenced region of any kind. A reply without a terminated fence is rejected.
func ExtractFencedYAML(reply string) (string, error) {
	s := strings.TrimSpace(reply)

	if i := strings.Index(s, yamlFence); i >= 0 {
		rest := s[i+len(yamlFence):]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j]), nil
		}
		return "", errf("fence", "", nil, "unterminated ```yaml block")
	}

	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			return strings.TrimSpace(rest[:j]), nil
		}
		return "", errf("fence", "", nil, "unterminated ``` block")
	}

	return "", errf("fence", "", nil, "no fenced block in reply")
}
