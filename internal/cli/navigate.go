package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitnav/internal/core"
	"github.com/kilupskalvis/gitnav/internal/models"
)

func runNavigate(c *cmdContext, token string) {
	result, err := c.Navigator.Navigate(token)
	if err != nil {
		c.Close()
		var coErr *core.CheckoutError
		if errors.As(err, &coErr) {
			exitError("checkout failed: %v", coErr.Err)
		}
		exitError("%v", err)
	}

	if result.Notice != core.NoticeNone {
		c.Logger.Debug("navigation ended without checkout", "token", token, "notice", result.Notice.String())
		printNotice(c.Out, result.Notice)
		return
	}

	c.Logger.Debug("checked out", "token", token, "resolved_by", string(result.By), "hash", result.Commit.Hash)
	printStatus(c.Out, result, c.Config.TimeFormat)

	if err := recordNavigation(c, result); err != nil {
		c.Logger.Warn("failed to record navigation", "error", err)
	}
}

func runWhere(c *cmdContext) {
	result, err := c.Navigator.Status()
	if err != nil {
		c.Close()
		exitError("%v", err)
	}
	printStatus(c.Out, result, c.Config.TimeFormat)

	if err := c.openJournal(); err != nil {
		c.Logger.Warn("failed to open journal", "error", err)
		return
	}
	if c.Store == nil {
		return
	}
	last, err := c.Store.LastNavigation()
	if err != nil {
		c.Logger.Warn("failed to read journal", "error", err)
		return
	}
	if last != nil {
		printLastNavigation(c.Out, last)
	}
}

// recordNavigation appends a successful move to the journal when enabled
func recordNavigation(c *cmdContext, result *core.NavigateResult) error {
	if err := c.openJournal(); err != nil {
		return err
	}
	if c.Store == nil {
		return nil
	}
	return c.Store.RecordNavigation(&models.Navigation{
		Token:    result.Token,
		FromHash: result.PreviousHash,
		ToHash:   result.Commit.Hash,
		ToIndex:  result.Index,
	})
}

func printNotice(w io.Writer, notice core.Notice) {
	color.New(color.FgYellow).Fprintln(w, notice.String())
}

// printStatus prints the position report for the checked-out commit
func printStatus(w io.Writer, result *core.NavigateResult, timeFormat string) {
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	fmt.Fprintln(w)
	if result.Head == nil || result.Head.IsDetached {
		cyan.Fprintln(w, "You are in 'detached HEAD' state")
	} else {
		cyan.Fprintf(w, "On branch '%s'\n", result.Head.BranchName)
	}
	fmt.Fprintf(w, "Index:   %d\n", result.Index)
	fmt.Fprint(w, "Commit:  ")
	yellow.Fprintln(w, result.Commit.Hash)
	fmt.Fprintf(w, "Message: %s\n", result.Commit.Summary())
	fmt.Fprintf(w, "Date:    %s\n", result.Commit.Timestamp.Format(timeFormat))
	fmt.Fprintf(w, "Author:  %s\n", result.Commit.Author)
}

// printLastNavigation prints the most recent journal entry
func printLastNavigation(w io.Writer, nav *models.Navigation) {
	fmt.Fprintf(w, "Last move: %s (%s -> %s)\n", nav.Token, shortHash(nav.FromHash), shortHash(nav.ToHash))
}
