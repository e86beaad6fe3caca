package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitnav/internal/models"
)

func runJournal(c *cmdContext) {
	if !c.Config.Journal {
		fmt.Fprintln(c.Out, "Journal is disabled; set journal = true in .git/gitnav.toml")
		return
	}
	if err := c.openJournal(); err != nil {
		c.Close()
		exitError("%v", err)
	}

	navs, err := c.Store.ListNavigations(limit)
	if err != nil {
		c.Close()
		exitError("failed to read journal: %v", err)
	}
	printJournal(c.Out, navs, c.Config.TimeFormat)
}

// printJournal prints navigations newest first
func printJournal(w io.Writer, navs []*models.Navigation, timeFormat string) {
	if len(navs) == 0 {
		fmt.Fprintln(w, "No navigations recorded")
		return
	}

	yellow := color.New(color.FgYellow)
	for _, nav := range navs {
		fmt.Fprintf(w, "%s  %-10s %s -> ", nav.Timestamp.Local().Format(timeFormat), nav.Token, shortHash(nav.FromHash))
		yellow.Fprintf(w, "%s", shortHash(nav.ToHash))
		fmt.Fprintf(w, " [%d]\n", nav.ToIndex)
	}
}
