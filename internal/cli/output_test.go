package cli

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitnav/internal/core"
	"github.com/kilupskalvis/gitnav/internal/models"
	"github.com/kilupskalvis/gitnav/internal/vcs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

var testCommits = []*models.Commit{
	{
		Hash:      "1111111aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		Message:   "Initial commit\n\nSet up the project",
		Author:    "Grace Hopper",
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	},
	{
		Hash:      "2222222bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		Message:   "Add parser",
		Author:    "Ada Lovelace",
		Timestamp: time.Date(2024, 1, 16, 8, 5, 0, 0, time.UTC),
	},
}

func TestPrintStatus_Detached(t *testing.T) {
	var buf bytes.Buffer
	result := &core.NavigateResult{
		Commit: testCommits[0],
		Index:  0,
		Head:   &models.HeadState{Hash: testCommits[0].Hash, IsDetached: true},
	}

	printStatus(&buf, result, "2006-01-02 15:04")

	out := buf.String()
	assert.Contains(t, out, "detached HEAD")
	assert.Contains(t, out, "Index:   0\n")
	assert.Contains(t, out, "Commit:  "+testCommits[0].Hash+"\n")
	assert.Contains(t, out, "Message: Initial commit\n")
	assert.NotContains(t, out, "Set up the project")
	assert.Contains(t, out, "Date:    2024-01-15 10:30\n")
	assert.Contains(t, out, "Author:  Grace Hopper\n")
}

func TestPrintStatus_OnBranch(t *testing.T) {
	var buf bytes.Buffer
	result := &core.NavigateResult{
		Commit: testCommits[1],
		Index:  1,
		Head:   &models.HeadState{Hash: testCommits[1].Hash, BranchName: "main"},
	}

	printStatus(&buf, result, "02/01/2006")

	out := buf.String()
	assert.Contains(t, out, "On branch 'main'")
	assert.Contains(t, out, "Date:    16/01/2024\n")
}

func TestPrintNotice(t *testing.T) {
	var buf bytes.Buffer
	printNotice(&buf, core.NoticeAlreadyNewest)
	assert.Equal(t, "Already at the newest commit\n", buf.String())
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 1, 18, 8, 5, 0, 0, time.UTC)

	printHistory(&buf, testCommits, testCommits[1].Hash, 0, now)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0 1111111 Initial commit (Grace Hopper, 2 days ago)", lines[0])
	assert.Equal(t, "1 2222222 (HEAD) Add parser (Ada Lovelace, 2 days ago)", lines[1])
}

func TestPrintHistory_LimitKeepsNewest(t *testing.T) {
	var buf bytes.Buffer

	printHistory(&buf, testCommits, "", 1, time.Now())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "1 2222222 Add parser"))
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	printHistory(&buf, nil, "", 0, time.Now())
	assert.Equal(t, "No commits yet\n", buf.String())
}

func TestPrintJournal(t *testing.T) {
	var buf bytes.Buffer
	navs := []*models.Navigation{
		{
			Timestamp: time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local),
			Token:     "next",
			FromHash:  testCommits[0].Hash,
			ToHash:    testCommits[1].Hash,
			ToIndex:   1,
		},
	}

	printJournal(&buf, navs, "2006-01-02 15:04")

	assert.Equal(t, "2024-02-01 09:00  next       1111111 -> 2222222 [1]\n", buf.String())
}

func TestPrintJournal_Empty(t *testing.T) {
	var buf bytes.Buffer
	printJournal(&buf, nil, "2006-01-02 15:04")
	assert.Equal(t, "No navigations recorded\n", buf.String())
}

func TestRefNames(t *testing.T) {
	engine := vcs.NewMockEngine(testCommits...)
	engine.AddBranch("main", testCommits[1].Hash)
	engine.AddTag("v0.1.0", testCommits[0].Hash)

	assert.Equal(t, []string{"main", "v0.1.0"}, refNames(engine))
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "1111111", shortHash(testCommits[0].Hash))
	assert.Equal(t, "abc", shortHash("abc"))
}
