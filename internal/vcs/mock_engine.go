package vcs

import (
	"fmt"

	"github.com/kilupskalvis/gitnav/internal/models"
)

// MockEngine is an in-memory implementation of Engine for testing.
type MockEngine struct {
	// History is returned by Commits, oldest first
	History []*models.Commit
	// BranchRefs and TagRefs are returned by Branches and Tags
	BranchRefs []*models.Reference
	TagRefs    []*models.Reference
	// HeadHash is the checked-out commit, updated by Checkout
	HeadHash   string
	HeadBranch string
	// Err can be set to make every method return an error
	Err error
	// CheckoutErr can be set to make only Checkout fail
	CheckoutErr error
	// CheckedOut records every hash passed to Checkout
	CheckedOut []string
	// HeadCalls counts calls to Head
	HeadCalls int
}

// NewMockEngine creates a MockEngine with the given history checked out at
// its newest commit.
func NewMockEngine(history ...*models.Commit) *MockEngine {
	m := &MockEngine{History: history}
	if len(history) > 0 {
		m.HeadHash = history[len(history)-1].Hash
	}
	return m
}

// AddBranch adds a branch pointing at hash.
func (m *MockEngine) AddBranch(name, hash string) {
	m.BranchRefs = append(m.BranchRefs, &models.Reference{Name: name, Hash: hash})
}

// AddTag adds a tag pointing at hash.
func (m *MockEngine) AddTag(name, hash string) {
	m.TagRefs = append(m.TagRefs, &models.Reference{Name: name, Hash: hash})
}

// Commits returns the mock history.
func (m *MockEngine) Commits() ([]*models.Commit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.History, nil
}

// Branches returns the mock branches.
func (m *MockEngine) Branches() ([]*models.Reference, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.BranchRefs, nil
}

// Tags returns the mock tags.
func (m *MockEngine) Tags() ([]*models.Reference, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.TagRefs, nil
}

// Head returns the mock HEAD.
func (m *MockEngine) Head() (*models.HeadState, error) {
	m.HeadCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.HeadState{
		Hash:       m.HeadHash,
		BranchName: m.HeadBranch,
		IsDetached: m.HeadBranch == "",
	}, nil
}

// Checkout moves the mock HEAD to hash, detaching it.
func (m *MockEngine) Checkout(hash string) error {
	if m.Err != nil {
		return m.Err
	}
	if m.CheckoutErr != nil {
		return m.CheckoutErr
	}
	for _, c := range m.History {
		if c.Hash == hash {
			m.HeadHash = hash
			m.HeadBranch = ""
			m.CheckedOut = append(m.CheckedOut, hash)
			return nil
		}
	}
	return fmt.Errorf("reference not found: %s", hash)
}
