// Package fetch implements the repository acquisition stage (C1): cloning a
// remote repository into a scoped, owned workspace and listing its
// VCS-tracked files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"

	gitutil "github.com/dsmgraph/dsm-analyzer/internal/git"
)

// Error wraps a fetch failure; the workspace has already been cleaned up by
// the time it is returned.
type Error struct {
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Result is the outcome of a successful fetch: an owned workspace root, the
// resolved branch name, and the repository's VCS-tracked file list
// (repository-relative, forward-slash, in tree order).
type Result struct {
	Root   string
	Branch string
	Files  []string
}

// ProgressFunc receives a human-readable progress string, emitted on clone
// phase changes or every >=5% advance within a phase.
type ProgressFunc func(message string)

// Options controls the clone.
type Options struct {
	Depth          int
	MaxRepoSizeMiB int64
	OnProgress     ProgressFunc
}

var percentRe = regexp.MustCompile(`(\d+)%`)

// sidebandWriter adapts go-git's sideband progress stream into phase-change
// and >=5%-advance progress callbacks for the fetch phase.
type sidebandWriter struct {
	onProgress  ProgressFunc
	lastPhase   string
	lastPercent int
}

func (w *sidebandWriter) Write(p []byte) (int, error) {
	line := string(p)
	phase := line
	percent := -1
	if m := percentRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			percent = n
		}
		if idx := percentRe.FindStringIndex(line); idx != nil {
			phase = line[:idx[0]]
		}
	}

	emit := false
	if phase != w.lastPhase {
		emit = true
		w.lastPhase = phase
		w.lastPercent = -1
	}
	if percent >= 0 && percent-w.lastPercent >= 5 {
		emit = true
		w.lastPercent = percent
	}

	if emit && w.onProgress != nil {
		w.onProgress(line)
	}
	return len(p), nil
}

// Fetch clones url into a new temporary workspace and lists its
// VCS-tracked files via the commit tree, avoiding a filesystem walk (which
// would pick up .git internals and any untracked cruft). The workspace is
// removed and a *Error returned on any failure; on success the caller owns
// the workspace and must call Cleanup(result) when done.
func Fetch(ctx context.Context, url string, opts Options) (*Result, error) {
	safeURL := gitutil.SanitizeRemoteURL(url)

	root, err := os.MkdirTemp("", "dsm-analyzer-*")
	if err != nil {
		return nil, &Error{URL: safeURL, Err: fmt.Errorf("creating workspace: %w", err)}
	}

	depth := opts.Depth
	if depth <= 0 {
		depth = 1
	}

	sb := &sidebandWriter{onProgress: opts.OnProgress, lastPercent: -1}
	repo, err := git.PlainCloneContext(ctx, root, false, &git.CloneOptions{
		URL:          url,
		Depth:        depth,
		SingleBranch: true,
		Progress:     sb,
	})
	if err != nil {
		os.RemoveAll(root)
		return nil, &Error{URL: safeURL, Err: classifyCloneError(err)}
	}

	head, err := repo.Head()
	if err != nil {
		os.RemoveAll(root)
		return nil, &Error{URL: safeURL, Err: fmt.Errorf("resolving HEAD: %w", err)}
	}
	branch := head.Name().Short()
	if branch == "" {
		branch = head.Hash().String()[:7]
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		os.RemoveAll(root)
		return nil, &Error{URL: safeURL, Err: fmt.Errorf("resolving HEAD commit: %w", err)}
	}
	tree, err := commit.Tree()
	if err != nil {
		os.RemoveAll(root)
		return nil, &Error{URL: safeURL, Err: fmt.Errorf("resolving HEAD tree: %w", err)}
	}

	var files []string
	walkErr := tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	})
	if walkErr != nil {
		os.RemoveAll(root)
		return nil, &Error{URL: safeURL, Err: fmt.Errorf("listing tracked files: %w", walkErr)}
	}

	if opts.MaxRepoSizeMiB > 0 {
		size, err := dirSizeBytes(root)
		if err == nil && size > opts.MaxRepoSizeMiB*1024*1024 {
			os.RemoveAll(root)
			return nil, &Error{URL: safeURL, Err: fmt.Errorf("repository exceeds max size of %d MiB", opts.MaxRepoSizeMiB)}
		}
	}

	return &Result{Root: root, Branch: branch, Files: files}, nil
}

// Cleanup removes the workspace. Safe to call on a nil result or a
// already-removed directory.
func Cleanup(result *Result) {
	if result == nil || result.Root == "" {
		return
	}
	os.RemoveAll(result.Root)
}

func classifyCloneError(err error) error {
	switch err {
	case transport.ErrAuthenticationRequired, transport.ErrAuthorizationFailed:
		return fmt.Errorf("authentication required or denied: %w", err)
	case transport.ErrRepositoryNotFound:
		return fmt.Errorf("repository not found: %w", err)
	default:
		return err
	}
}

func dirSizeBytes(root string) (int64, error) {
	var total int64
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total, err
}

var _ io.Writer = (*sidebandWriter)(nil)
