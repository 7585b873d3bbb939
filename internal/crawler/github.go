package crawler

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/google/go-github/v68/github"
)

// GitHub crawls a repository through the GitHub API: one recursive tree
// listing, then a blob fetch per matching entry. The tree entry size is
// checked before the blob is downloaded.
type GitHub struct {
	Owner  string
	Repo   string
	Ref    string // branch, tag, or commit; empty means the default branch
	Subdir string // restrict the crawl to this subtree; paths are reported relative to it
	Opts   Options

	client *github.Client
}

// NewGitHub creates a GitHub crawler from a repository URL such as
// https://github.com/owner/repo or .../tree/branch/sub/dir. An empty token
// crawls anonymously.
func NewGitHub(repoURL, token string, opts Options) (*GitHub, error) {
	owner, repo, ref, subdir, err := parseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	return &GitHub{
		Owner:  owner,
		Repo:   repo,
		Ref:    ref,
		Subdir: subdir,
		Opts:   opts,
		client: client,
	}, nil
}

// Collect enumerates matching files from the repository tree in the order
// GitHub reports them, which is stable for a given commit.
func (g *GitHub) Collect(ctx context.Context) ([]SourceFile, error) {
	ref := g.Ref
	if ref == "" {
		repo, _, err := g.client.Repositories.Get(ctx, g.Owner, g.Repo)
		if err != nil {
			return nil, fmt.Errorf("fetching repository %s/%s: %w", g.Owner, g.Repo, err)
		}
		ref = repo.GetDefaultBranch()
	}

	tree, _, err := g.client.Git.GetTree(ctx, g.Owner, g.Repo, ref, true)
	if err != nil {
		return nil, fmt.Errorf("fetching tree %s/%s@%s: %w", g.Owner, g.Repo, ref, err)
	}
	if tree.GetTruncated() {
		log.Printf("crawler: tree listing for %s/%s is truncated; some files may be missing", g.Owner, g.Repo)
	}

	prefix := ""
	if g.Subdir != "" {
		prefix = strings.Trim(g.Subdir, "/") + "/"
	}

	var files []SourceFile
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		rel := entry.GetPath()
		if prefix != "" {
			if !strings.HasPrefix(rel, prefix) {
				continue
			}
			rel = strings.TrimPrefix(rel, prefix)
		}
		if !g.Opts.keep(rel) {
			continue
		}
		if g.Opts.MaxFileBytes > 0 && int64(entry.GetSize()) > g.Opts.MaxFileBytes {
			continue
		}

		content, err := g.fetchBlob(ctx, entry.GetSHA())
		if err != nil {
			log.Printf("crawler: skipping %q: %v", rel, err)
			continue
		}
		files = append(files, SourceFile{Path: rel, Content: content})
	}

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

func (g *GitHub) fetchBlob(ctx context.Context, sha string) (string, error) {
	blob, _, err := g.client.Git.GetBlob(ctx, g.Owner, g.Repo, sha)
	if err != nil {
		return "", fmt.Errorf("fetching blob: %w", err)
	}

	raw := blob.GetContent()
	if blob.GetEncoding() == "base64" {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(raw, "\n", ""))
		if err != nil {
			return "", fmt.Errorf("decoding blob: %w", err)
		}
		return string(decoded), nil
	}
	return raw, nil
}

// parseRepoURL splits a GitHub URL into owner, repo, optional ref, and
// optional subdirectory. Accepted forms:
//
//	https://github.com/owner/repo
//	https://github.com/owner/repo.git
//	https://github.com/owner/repo/tree/ref
//	https://github.com/owner/repo/tree/ref/sub/dir
func parseRepoURL(repoURL string) (owner, repo, ref, subdir string, err error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return "", "", "", "", fmt.Errorf("invalid repository URL %q: %w", repoURL, err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", "", fmt.Errorf("repository URL %q must contain owner and repo", repoURL)
	}

	owner = parts[0]
	repo = strings.TrimSuffix(parts[1], ".git")

	if len(parts) >= 4 && parts[2] == "tree" {
		ref = parts[3]
		if len(parts) > 4 {
			subdir = strings.Join(parts[4:], "/")
		}
	}

	return owner, repo, ref, subdir, nil
}
