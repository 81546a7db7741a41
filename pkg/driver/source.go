package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// LoadSource reads a program from path, or from stdin when path is "-".
func LoadSource(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("source: read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("source: %w", err)
	}
	return string(data), nil
}

var ErrNotInRepository = errors.New("source: not inside a git repository")

// LoadSourceAtRevision reads path as it was committed at revision in the
// repository containing it. The revision accepts anything git rev-parse
// would, such as HEAD~2, a branch, a tag or a hash. Only the local
// repository is read.
func LoadSourceAtRevision(path, revision string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("source: resolve %s: %w", path, err)
	}
	repo, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotInRepository, path)
		}
		return "", fmt.Errorf("source: open repository: %w", err)
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("source: worktree: %w", err)
	}
	rel, err := filepath.Rel(worktree.Filesystem.Root(), abs)
	if err != nil {
		return "", fmt.Errorf("source: locate %s in repository: %w", path, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", fmt.Errorf("source: resolve revision %s: %w", revision, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return "", fmt.Errorf("source: commit %s: %w", hash, err)
	}
	file, err := commit.File(filepath.ToSlash(rel))
	if err != nil {
		return "", fmt.Errorf("source: %s at %s: %w", rel, revision, err)
	}
	contents, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("source: read %s at %s: %w", rel, revision, err)
	}
	return contents, nil
}
