// Package vcs abstracts the version-control engine gitnav drives.
// The go-git backed GitEngine is used in production; MockEngine holds an
// in-memory history for testing the core package.
package vcs

import (
	"errors"

	"github.com/kilupskalvis/gitnav/internal/models"
)

// ErrRepositoryNotFound is returned when no repository exists in the
// starting directory or any of its parents.
var ErrRepositoryNotFound = errors.New("not a git repository (or any of the parent directories)")

// Engine defines the contract for version-control operations.
type Engine interface {
	// Commits returns every commit reachable from any reference, oldest first.
	Commits() ([]*models.Commit, error)
	// Branches returns the local branches.
	Branches() ([]*models.Reference, error)
	// Tags returns the tags, peeled to the commits they name.
	Tags() ([]*models.Reference, error)
	// Head returns the currently checked-out commit.
	Head() (*models.HeadState, error)
	// Checkout sets the working tree to the commit, detaching HEAD.
	Checkout(hash string) error
}

// Verify that *GitEngine implements Engine at compile time
var _ Engine = (*GitEngine)(nil)
