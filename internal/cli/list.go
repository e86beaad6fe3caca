package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/kilupskalvis/gitnav/internal/models"
)

func runList(c *cmdContext) {
	history := c.Navigator.History()
	var headHash string
	if len(history) > 0 {
		head, err := c.Engine.Head()
		if err != nil {
			c.Close()
			exitError("%v", err)
		}
		headHash = head.Hash
	}
	printHistory(c.Out, history, headHash, limit, time.Now())
}

// printHistory prints the numbered history oldest first. A positive limit
// keeps only the newest entries.
func printHistory(w io.Writer, commits []*models.Commit, headHash string, limit int, now time.Time) {
	if len(commits) == 0 {
		fmt.Fprintln(w, "No commits yet")
		return
	}

	start := 0
	if limit > 0 && limit < len(commits) {
		start = len(commits) - limit
	}

	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	width := len(fmt.Sprint(len(commits) - 1))

	for i := start; i < len(commits); i++ {
		commit := commits[i]
		fmt.Fprintf(w, "%*d ", width, i)
		yellow.Fprintf(w, "%s ", commit.ShortHash())
		if commit.Hash == headHash {
			cyan.Fprint(w, "(HEAD) ")
		}
		fmt.Fprintf(w, "%s (%s, %s)\n", commit.Summary(), commit.Author, humanize.RelTime(commit.Timestamp, now, "ago", "from now"))
	}
}
