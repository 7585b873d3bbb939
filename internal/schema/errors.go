// Package schema parses and structurally validates the semi-structured YAML
// replies produced by the text generator: fenced-block extraction, the
// permissive index grammar, and the per-stage schemas for abstractions,
// relationships, and chapter ordering.
package schema

import "fmt"

// ValidationError describes a structural problem in a generator reply: a
// missing fenced block, a malformed entry, or an index outside its valid
// range. Stages treat it exactly like a transport failure and retry.
type ValidationError struct {
	Schema string // which schema rejected the reply, e.g. "abstractions"
	Entry  string // offending entry, when one can be named
	Value  any    // raw malformed value
	Reason string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Schema, e.Reason)
	if e.Entry != "" {
		msg += fmt.Sprintf(" (entry %s)", e.Entry)
	}
	if e.Value != nil {
		msg += fmt.Sprintf(": %v", e.Value)
	}
	return msg
}

// errf builds a ValidationError for the given schema and raw value.
func errf(schema, entry string, value any, format string, args ...any) *ValidationError {
	return &ValidationError{
		Schema: schema,
		Entry:  entry,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}
