package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseIndex parses an index entry with the grammar: optional surrounding
// whitespace, a mandatory leading base-10 integer, then an optional `#`
// followed by a comment which is ignored. Generators frequently emit entries
// like "3 # path/to/file.go".
func ParseIndex(s string) (int, error) {
	head, _, _ := strings.Cut(s, "#")
	head = strings.TrimSpace(head)
	if head == "" {
		return 0, fmt.Errorf("no integer in index entry %q", s)
	}
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q in index entry %q", head, s)
	}
	return n, nil
}

// coerceIndex converts a decoded YAML scalar into an index. Bare integers
// pass through; strings go through ParseIndex.
func coerceIndex(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case string:
		return ParseIndex(x)
	default:
		return ParseIndex(fmt.Sprint(v))
	}
}
