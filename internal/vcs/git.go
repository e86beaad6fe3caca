package vcs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/kilupskalvis/gitnav/internal/models"
)

// GitEngine implements Engine on top of go-git
type GitEngine struct {
	repo   *git.Repository
	gitDir string
}

// Open locates the repository containing dir, searching upward through
// parent directories.
func Open(dir string) (*GitEngine, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrRepositoryNotFound
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	return NewGitEngine(repo), nil
}

// NewGitEngine wraps an already opened repository
func NewGitEngine(repo *git.Repository) *GitEngine {
	e := &GitEngine{repo: repo}
	if fs, ok := repo.Storer.(*filesystem.Storage); ok {
		e.gitDir = fs.Filesystem().Root()
	}
	return e
}

// GitDir returns the path of the repository's git directory.
// Empty for repositories that are not stored on disk.
func (e *GitEngine) GitDir() string {
	return e.gitDir
}

// Commits walks the history of every reference and returns the union
// ordered by committer time, oldest first. Commits sharing a timestamp keep
// parent-before-child order.
func (e *GitEngine) Commits() ([]*models.Commit, error) {
	iter, err := e.repo.Log(&git.LogOptions{All: true})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return []*models.Commit{}, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()

	var commits []*models.Commit
	seen := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		if seen[c.Hash] {
			return nil
		}
		seen[c.Hash] = true
		commits = append(commits, convertCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	// The walk yields newest first per reference
	for i, j := 0, len(commits)-1; i < j; i, j = i+1, j-1 {
		commits[i], commits[j] = commits[j], commits[i]
	}
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp.Before(commits[j].Timestamp)
	})

	return commits, nil
}

// Branches returns the local branches
func (e *GitEngine) Branches() ([]*models.Reference, error) {
	iter, err := e.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer iter.Close()

	var branches []*models.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		branches = append(branches, &models.Reference{
			Name: ref.Name().Short(),
			Hash: ref.Hash().String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// Tags returns all tags; annotated tags are resolved to their commit
func (e *GitEngine) Tags() ([]*models.Reference, error) {
	iter, err := e.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer iter.Close()

	var tags []*models.Reference
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		tagObj, err := e.repo.TagObject(hash)
		switch {
		case err == nil:
			c, err := tagObj.Commit()
			if err != nil {
				// Tags pointing at trees or blobs are not navigable
				return nil
			}
			hash = c.Hash
		case !errors.Is(err, plumbing.ErrObjectNotFound):
			return err
		}
		tags = append(tags, &models.Reference{
			Name: ref.Name().Short(),
			Hash: hash.String(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// Head returns the currently checked-out commit
func (e *GitEngine) Head() (*models.HeadState, error) {
	ref, err := e.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}

	state := &models.HeadState{Hash: ref.Hash().String()}
	if ref.Name().IsBranch() {
		state.BranchName = ref.Name().Short()
	} else {
		state.IsDetached = true
	}
	return state, nil
}

// Checkout moves HEAD to the commit and updates the working tree.
// Uncommitted changes to tracked files make the checkout fail.
func (e *GitEngine) Checkout(hash string) error {
	wt, err := e.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: plumbing.NewHash(hash)})
}

func convertCommit(c *object.Commit) *models.Commit {
	return &models.Commit{
		Hash:      c.Hash.String(),
		Message:   c.Message,
		Author:    c.Author.Name,
		Timestamp: c.Committer.When,
	}
}
