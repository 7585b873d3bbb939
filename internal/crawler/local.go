package crawler

import (
	"bufio"
	"bytes"
	"context"
	"io/fs"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// Local crawls a directory on disk. Inside a git repository it lists files
// with git ls-files, so ignored and untracked noise never reaches the
// pipeline; elsewhere it falls back to walking the tree.
type Local struct {
	Dir  string
	Opts Options
}

// NewLocal creates a Local crawler rooted at dir.
func NewLocal(dir string, opts Options) *Local {
	return &Local{Dir: dir, Opts: opts}
}

// Collect enumerates matching files under the root in stable (sorted) order.
func (l *Local) Collect(ctx context.Context) ([]SourceFile, error) {
	relPaths, err := l.listFiles(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(relPaths)

	var files []SourceFile
	for _, rel := range relPaths {
		slashRel := filepath.ToSlash(rel)
		if !l.Opts.keep(slashRel) {
			continue
		}

		absPath := filepath.Join(l.Dir, rel)
		info, err := os.Stat(absPath)
		if err != nil || info.IsDir() {
			continue
		}
		if l.Opts.MaxFileBytes > 0 && info.Size() > l.Opts.MaxFileBytes {
			continue
		}

		content, err := os.ReadFile(absPath)
		if err != nil {
			log.Printf("crawler: skipping unreadable file %q: %v", rel, err)
			continue
		}

		files = append(files, SourceFile{Path: slashRel, Content: string(content)})
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// listFiles returns relative file paths under the root. It tries git
// ls-files first; outside a git repo it walks the tree.
func (l *Local) listFiles(ctx context.Context) ([]string, error) {
	if paths, err := gitLsFiles(ctx, l.Dir); err == nil {
		return paths, nil
	}
	return walkFiles(l.Dir)
}

func gitLsFiles(ctx context.Context, dir string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-files")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}

	var paths []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, scanner.Err()
}

func walkFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("crawler: skipping path %q: %v", p, err)
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		paths = append(paths, rel)
		return nil
	})
	return paths, err
}
