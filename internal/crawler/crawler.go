// Package crawler enumerates the source files a tutorial is generated from,
// either from a local directory or a GitHub repository, under include/exclude
// glob patterns and a file size ceiling.
package crawler

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNoFiles is returned when a crawl matches nothing. The pipeline never
// starts in that case.
var ErrNoFiles = errors.New("no files matched the crawl filters")

// SourceFile is one collected file. Files are referenced by their position in
// the collected sequence for the rest of the run, so ordering is stable.
type SourceFile struct {
	Path    string
	Content string
}

// Options control which files a crawl keeps.
type Options struct {
	Include      []string // glob patterns; empty means keep everything
	Exclude      []string // glob patterns; an excluded file is dropped even if included
	MaxFileBytes int64    // files larger than this are skipped; 0 means no limit
}

// Collector enumerates (path, content) pairs for a source tree.
type Collector interface {
	Collect(ctx context.Context) ([]SourceFile, error)
}

// skipDirs are never descended into regardless of patterns.
var skipDirs = map[string]bool{
	"vendor":       true,
	"node_modules": true,
	".git":         true,
	"build":        true,
	"dist":         true,
	"__pycache__":  true,
}

// keep decides whether a relative slash path passes the include/exclude
// filters.
func (o Options) keep(rel string) bool {
	if inSkippedDir(rel) {
		return false
	}
	if matchAny(o.Exclude, rel) {
		return false
	}
	if len(o.Include) == 0 {
		return true
	}
	return matchAny(o.Include, rel)
}

// matchAny reports whether any pattern matches the path. A pattern is tried
// against the full relative path, the base name, and each path segment, so
// "*.py", "tests/*", and "docs" all behave as expected.
func matchAny(patterns []string, rel string) bool {
	base := path.Base(rel)
	segments := strings.Split(rel, "/")
	for _, p := range patterns {
		if ok, err := path.Match(p, rel); err == nil && ok {
			return true
		}
		if ok, err := path.Match(p, base); err == nil && ok {
			return true
		}
		for _, seg := range segments {
			if ok, err := path.Match(p, seg); err == nil && ok {
				return true
			}
		}
	}
	return false
}

func inSkippedDir(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if skipDirs[seg] {
			return true
		}
	}
	return false
}
