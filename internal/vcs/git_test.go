package vcs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// testRepo is an in-memory repository with a memfs worktree
type testRepo struct {
	t    *testing.T
	repo *git.Repository
	fs   billy.Filesystem
	wt   *git.Worktree
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	fs := memfs.New()
	repo, err := git.Init(memory.NewStorage(), fs)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return &testRepo{t: t, repo: repo, fs: fs, wt: wt}
}

// commit writes content to file.txt and commits it at baseTime+offset
func (r *testRepo) commit(message, content string, offset time.Duration) plumbing.Hash {
	r.t.Helper()
	require.NoError(r.t, util.WriteFile(r.fs, "file.txt", []byte(content), 0644))
	_, err := r.wt.Add("file.txt")
	require.NoError(r.t, err)

	sig := &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: baseTime.Add(offset)}
	hash, err := r.wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(r.t, err)
	return hash
}

func TestGitEngine_CommitsOldestFirst(t *testing.T) {
	r := newTestRepo(t)
	a := r.commit("first\n\nbody", "a", 0)
	b := r.commit("second", "b", time.Hour)
	c := r.commit("third", "c", 2*time.Hour)

	engine := NewGitEngine(r.repo)
	commits, err := engine.Commits()
	require.NoError(t, err)

	require.Len(t, commits, 3)
	assert.Equal(t, a.String(), commits[0].Hash)
	assert.Equal(t, b.String(), commits[1].Hash)
	assert.Equal(t, c.String(), commits[2].Hash)
	assert.Equal(t, "first", commits[0].Summary())
	assert.Equal(t, "Ada Lovelace", commits[0].Author)
	assert.True(t, commits[0].Timestamp.Equal(baseTime))
}

func TestGitEngine_CommitsAcrossBranchesNoDuplicates(t *testing.T) {
	r := newTestRepo(t)
	a := r.commit("base", "a", 0)
	b := r.commit("main work", "b", 2*time.Hour)

	// Side branch forked from a, committed between a and b
	require.NoError(t, r.wt.Checkout(&git.CheckoutOptions{
		Hash:   a,
		Branch: plumbing.NewBranchReferenceName("side"),
		Create: true,
	}))
	s := r.commit("side work", "s", time.Hour)

	engine := NewGitEngine(r.repo)
	commits, err := engine.Commits()
	require.NoError(t, err)

	require.Len(t, commits, 3)
	assert.Equal(t, a.String(), commits[0].Hash)
	assert.Equal(t, s.String(), commits[1].Hash)
	assert.Equal(t, b.String(), commits[2].Hash)

	seen := make(map[string]bool)
	for i, c := range commits {
		assert.False(t, seen[c.Hash], "duplicate hash %s", c.Hash)
		seen[c.Hash] = true
		if i > 0 {
			assert.False(t, c.Timestamp.Before(commits[i-1].Timestamp))
		}
	}
}

func TestGitEngine_CommitsSameTimestampKeepsParentOrder(t *testing.T) {
	r := newTestRepo(t)
	a := r.commit("one", "a", 0)
	b := r.commit("two", "b", 0)
	c := r.commit("three", "c", 0)

	commits, err := NewGitEngine(r.repo).Commits()
	require.NoError(t, err)

	require.Len(t, commits, 3)
	assert.Equal(t, []string{a.String(), b.String(), c.String()},
		[]string{commits[0].Hash, commits[1].Hash, commits[2].Hash})
}

func TestGitEngine_EmptyRepository(t *testing.T) {
	r := newTestRepo(t)

	commits, err := NewGitEngine(r.repo).Commits()
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestGitEngine_BranchesAndTags(t *testing.T) {
	r := newTestRepo(t)
	a := r.commit("first", "a", 0)
	b := r.commit("second", "b", time.Hour)

	require.NoError(t, r.repo.Storer.SetReference(
		plumbing.NewHashReference(plumbing.NewBranchReferenceName("feature"), a)))
	_, err := r.repo.CreateTag("v1.0", a, nil)
	require.NoError(t, err)
	_, err = r.repo.CreateTag("v2.0", b, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Ada Lovelace", Email: "ada@example.com", When: baseTime},
		Message: "release 2.0",
	})
	require.NoError(t, err)

	engine := NewGitEngine(r.repo)

	branches, err := engine.Branches()
	require.NoError(t, err)
	names := map[string]string{}
	for _, br := range branches {
		names[br.Name] = br.Hash
	}
	assert.Equal(t, a.String(), names["feature"])
	assert.Equal(t, b.String(), names["master"])

	tags, err := engine.Tags()
	require.NoError(t, err)
	tagHashes := map[string]string{}
	for _, tag := range tags {
		tagHashes[tag.Name] = tag.Hash
	}
	assert.Equal(t, a.String(), tagHashes["v1.0"])
	// Annotated tag is peeled to the commit, not the tag object
	assert.Equal(t, b.String(), tagHashes["v2.0"])
}

func TestGitEngine_CheckoutDetachesHead(t *testing.T) {
	r := newTestRepo(t)
	a := r.commit("first", "a", 0)
	r.commit("second", "b", time.Hour)

	engine := NewGitEngine(r.repo)

	head, err := engine.Head()
	require.NoError(t, err)
	assert.False(t, head.IsDetached)
	assert.Equal(t, "master", head.BranchName)

	require.NoError(t, engine.Checkout(a.String()))

	head, err = engine.Head()
	require.NoError(t, err)
	assert.True(t, head.IsDetached)
	assert.Empty(t, head.BranchName)
	assert.Equal(t, a.String(), head.Hash)

	content, err := util.ReadFile(r.fs, "file.txt")
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
}

func TestGitEngine_CheckoutDirtyWorktreeFails(t *testing.T) {
	r := newTestRepo(t)
	a := r.commit("first", "a", 0)
	r.commit("second", "b", time.Hour)

	require.NoError(t, util.WriteFile(r.fs, "file.txt", []byte("local edit"), 0644))

	err := NewGitEngine(r.repo).Checkout(a.String())
	assert.Error(t, err)
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrRepositoryNotFound)
}

func TestOpen_SearchesParentDirectories(t *testing.T) {
	root := t.TempDir()
	_, err := git.PlainInit(root, false)
	require.NoError(t, err)

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	engine, err := Open(nested)
	require.NoError(t, err)
	assert.NotEmpty(t, engine.GitDir())
}
