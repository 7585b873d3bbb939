package crawler

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func collectedPaths(files []SourceFile) []string {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func TestLocalCollectIncludePatterns(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.go":        "package main",
		"util/helper.go": "package util",
		"README.md":      "# readme",
	})

	files, err := NewLocal(dir, Options{Include: []string{"*.go"}}).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go", "util/helper.go"}, collectedPaths(files))
	assert.Equal(t, "package main", files[0].Content)
}

func TestLocalCollectExcludeWins(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"main.go":      "package main",
		"main_test.go": "package main",
	})

	files, err := NewLocal(dir, Options{
		Include: []string{"*.go"},
		Exclude: []string{"*_test.go"},
	}).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, collectedPaths(files))
}

func TestLocalCollectMaxFileBytes(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"small.py": "x = 1",
		"big.py":   strings.Repeat("x", 2048),
	})

	files, err := NewLocal(dir, Options{MaxFileBytes: 1024}).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"small.py"}, collectedPaths(files))
}

func TestLocalCollectNoMatches(t *testing.T) {
	dir := writeTree(t, map[string]string{"notes.txt": "hi"})

	_, err := NewLocal(dir, Options{Include: []string{"*.rs"}}).Collect(context.Background())
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestLocalCollectSkipsNoiseDirs(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"app.js":                 "console.log(1)",
		"node_modules/dep/x.js":  "noise",
		"vendor/lib/y.go":        "noise",
		"__pycache__/z.pyc":      "noise",
		"src/build_tools/ok.js":  "kept", // "build_tools" is not the skip dir "build"
	})

	files, err := NewLocal(dir, Options{}).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"app.js", "src/build_tools/ok.js"}, collectedPaths(files))
}

func TestLocalCollectStableOrdering(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"b.go": "b", "a.go": "a", "c/d.go": "d",
	})

	first, err := NewLocal(dir, Options{}).Collect(context.Background())
	require.NoError(t, err)
	second, err := NewLocal(dir, Options{}).Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, collectedPaths(first), collectedPaths(second))
	assert.Equal(t, []string{"a.go", "b.go", "c/d.go"}, collectedPaths(first))
}

func TestMatchAnySegments(t *testing.T) {
	assert.True(t, matchAny([]string{"*.py"}, "pkg/deep/mod.py"))
	assert.True(t, matchAny([]string{"tests"}, "tests/test_a.py"))
	assert.True(t, matchAny([]string{"docs/*"}, "docs/guide.md"))
	assert.False(t, matchAny([]string{"*.py"}, "pkg/mod.go"))
}

func TestParseRepoURL(t *testing.T) {
	owner, repo, ref, subdir, err := parseRepoURL("https://github.com/julianshen/codetutor")
	require.NoError(t, err)
	assert.Equal(t, "julianshen", owner)
	assert.Equal(t, "codetutor", repo)
	assert.Empty(t, ref)
	assert.Empty(t, subdir)

	owner, repo, ref, subdir, err = parseRepoURL("https://github.com/foo/bar.git")
	require.NoError(t, err)
	assert.Equal(t, "foo", owner)
	assert.Equal(t, "bar", repo)

	owner, repo, ref, subdir, err = parseRepoURL("https://github.com/foo/bar/tree/main/pkg/sub")
	require.NoError(t, err)
	assert.Equal(t, "main", ref)
	assert.Equal(t, "pkg/sub", subdir)

	_, _, _, _, err = parseRepoURL("https://github.com/justowner")
	assert.Error(t, err)
}
