package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kilupskalvis/gitnav/internal/models"
	"github.com/kilupskalvis/gitnav/internal/vcs"
)

// Reserved navigation words. They are matched before any branch, tag or
// hash lookup, so refs with these names cannot be reached by name.
const (
	TokenInit = "init"
	TokenHead = "head"
	TokenNext = "next"
	TokenPrev = "prev"
)

// ReservedTokens lists the reserved navigation words
var ReservedTokens = []string{TokenNext, TokenPrev, TokenInit, TokenHead}

var (
	// ErrCurrentCommitNotFound is returned when HEAD is not part of the loaded history
	ErrCurrentCommitNotFound = errors.New("current commit not found in history")
	// ErrEmptyHistory is returned when the repository has no commits
	ErrEmptyHistory = errors.New("repository has no commits")
)

// Notice is a non-fatal outcome that ends a navigation without a checkout
type Notice int

const (
	NoticeNone Notice = iota
	NoticeAlreadyNewest
	NoticeAlreadyOldest
	NoticeInvalidNumber
	NoticeInvalidTarget
)

// String returns the message shown to the user
func (n Notice) String() string {
	switch n {
	case NoticeAlreadyNewest:
		return "Already at the newest commit"
	case NoticeAlreadyOldest:
		return "Already at the oldest commit"
	case NoticeInvalidNumber:
		return "Invalid commit number"
	case NoticeInvalidTarget:
		return "Invalid commit hash, branch or tag"
	default:
		return ""
	}
}

// ResolvedBy names the rule that matched a token
type ResolvedBy string

const (
	ByReserved ResolvedBy = "reserved"
	ByIndex    ResolvedBy = "index"
	ByBranch   ResolvedBy = "branch"
	ByTag      ResolvedBy = "tag"
	ByHash     ResolvedBy = "hash"
)

// Resolution is the outcome of resolving a token.
// Either Commit is set or Notice is not NoticeNone.
type Resolution struct {
	Commit *models.Commit
	By     ResolvedBy
	Notice Notice
}

// NavigateResult contains the result of a navigation
type NavigateResult struct {
	Token        string
	PreviousHash string
	Commit       *models.Commit
	Index        int
	Head         *models.HeadState
	By           ResolvedBy
	Notice       Notice
}

// CheckoutError reports an engine failure while checking out a commit
type CheckoutError struct {
	Hash string
	Err  error
}

func (e *CheckoutError) Error() string {
	return fmt.Sprintf("checkout of %s failed: %v", e.Hash, e.Err)
}

func (e *CheckoutError) Unwrap() error {
	return e.Err
}

// Navigator moves the working tree through a repository's ordered history
type Navigator struct {
	engine      vcs.Engine
	commits     []*models.Commit
	initialHead string
}

// NewNavigator loads the full history once and records the HEAD at load time
func NewNavigator(engine vcs.Engine) (*Navigator, error) {
	commits, err := engine.Commits()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	head, err := engine.Head()
	if err != nil && len(commits) > 0 {
		return nil, err
	}

	n := &Navigator{engine: engine, commits: commits}
	if head != nil {
		n.initialHead = head.Hash
	}
	return n, nil
}

// History returns the loaded history, oldest first
func (n *Navigator) History() []*models.Commit {
	return n.commits
}

// InitialHead returns the hash that was checked out when the history was loaded
func (n *Navigator) InitialHead() string {
	return n.initialHead
}

// FindCurrentIndex returns the position of the checked-out commit.
// HEAD is queried on every call since a checkout moves it.
func (n *Navigator) FindCurrentIndex() (int, error) {
	head, err := n.engine.Head()
	if err != nil {
		return -1, err
	}
	idx := n.indexOf(head.Hash)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", ErrCurrentCommitNotFound, head.Hash)
	}
	return idx, nil
}

func (n *Navigator) indexOf(hash string) int {
	for i, c := range n.commits {
		if c.Hash == hash {
			return i
		}
	}
	return -1
}

// Resolve maps a token to a single target commit.
// Precedence: init, head, next, prev, decimal index, branch, tag, hash prefix.
func (n *Navigator) Resolve(token string) (*Resolution, error) {
	switch token {
	case TokenInit, TokenHead:
		if len(n.commits) == 0 {
			return nil, ErrEmptyHistory
		}
		if token == TokenInit {
			return &Resolution{Commit: n.commits[0], By: ByReserved}, nil
		}
		return &Resolution{Commit: n.commits[len(n.commits)-1], By: ByReserved}, nil

	case TokenNext, TokenPrev:
		if len(n.commits) == 0 {
			return nil, ErrEmptyHistory
		}
		current, err := n.FindCurrentIndex()
		if err != nil {
			return nil, err
		}
		if token == TokenNext {
			if current+1 >= len(n.commits) {
				return &Resolution{Notice: NoticeAlreadyNewest}, nil
			}
			return &Resolution{Commit: n.commits[current+1], By: ByReserved}, nil
		}
		if current-1 < 0 {
			return &Resolution{Notice: NoticeAlreadyOldest}, nil
		}
		return &Resolution{Commit: n.commits[current-1], By: ByReserved}, nil
	}

	if isDigits(token) {
		idx, err := strconv.Atoi(token)
		if err != nil || idx < 0 || idx >= len(n.commits) {
			return &Resolution{Notice: NoticeInvalidNumber}, nil
		}
		return &Resolution{Commit: n.commits[idx], By: ByIndex}, nil
	}

	branches, err := n.engine.Branches()
	if err != nil {
		return nil, err
	}
	if ref := models.FindReference(branches, token); ref != nil {
		return n.resolveRef(ref, ByBranch), nil
	}

	tags, err := n.engine.Tags()
	if err != nil {
		return nil, err
	}
	if ref := models.FindReference(tags, token); ref != nil {
		return n.resolveRef(ref, ByTag), nil
	}

	if token == "" {
		return &Resolution{Notice: NoticeInvalidTarget}, nil
	}
	for _, c := range n.commits {
		if strings.HasPrefix(c.Hash, token) {
			return &Resolution{Commit: c, By: ByHash}, nil
		}
	}
	return &Resolution{Notice: NoticeInvalidTarget}, nil
}

// resolveRef finds the ref's commit in the loaded history. A ref created
// after the history was loaded still resolves, with only its hash known.
func (n *Navigator) resolveRef(ref *models.Reference, by ResolvedBy) *Resolution {
	if idx := n.indexOf(ref.Hash); idx >= 0 {
		return &Resolution{Commit: n.commits[idx], By: by}
	}
	return &Resolution{Commit: &models.Commit{Hash: ref.Hash}, By: by}
}

// Navigate resolves token, checks out the target and reports the new position.
// Notices return a result without touching the working tree.
func (n *Navigator) Navigate(token string) (*NavigateResult, error) {
	res, err := n.Resolve(token)
	if err != nil {
		return nil, err
	}
	if res.Notice != NoticeNone {
		return &NavigateResult{Token: token, Notice: res.Notice, Index: -1}, nil
	}

	previous, err := n.engine.Head()
	if err != nil {
		return nil, err
	}

	if err := n.engine.Checkout(res.Commit.Hash); err != nil {
		return nil, &CheckoutError{Hash: res.Commit.Hash, Err: err}
	}

	result, err := n.Status()
	if err != nil {
		return nil, err
	}
	result.Token = token
	result.PreviousHash = previous.Hash
	result.By = res.By
	return result, nil
}

// Status reports the checked-out commit and its position without navigating
func (n *Navigator) Status() (*NavigateResult, error) {
	if len(n.commits) == 0 {
		return nil, ErrEmptyHistory
	}
	head, err := n.engine.Head()
	if err != nil {
		return nil, err
	}
	idx := n.indexOf(head.Hash)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrCurrentCommitNotFound, head.Hash)
	}
	return &NavigateResult{
		Commit: n.commits[idx],
		Index:  idx,
		Head:   head,
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
