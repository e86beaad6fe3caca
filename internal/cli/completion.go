package cli

import (
	"os"
	"strings"

	"github.com/kilupskalvis/gitnav/internal/core"
	"github.com/kilupskalvis/gitnav/internal/vcs"
	"github.com/spf13/cobra"
)

const completionHelp = `To load completions:

Bash:
  $ source <(gitnav --completion bash)

Zsh:
  $ source <(gitnav --completion zsh)

Fish:
  $ gitnav --completion fish | source`

func runCompletion(cmd *cobra.Command, shell string) {
	out := cmd.OutOrStdout()
	var err error
	switch shell {
	case "bash":
		err = cmd.GenBashCompletionV2(out, true)
	case "zsh":
		err = cmd.GenZshCompletion(out)
	case "fish":
		err = cmd.GenFishCompletion(out, true)
	default:
		exitError("unsupported shell %q\n\n%s", shell, completionHelp)
	}
	if err != nil {
		exitError("%v", err)
	}
}

// completeTargets offers reserved words, branches and tags for the positional argument
func completeTargets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	candidates := append([]string{}, core.ReservedTokens...)
	if cwd, err := os.Getwd(); err == nil {
		if engine, err := vcs.Open(cwd); err == nil {
			candidates = append(candidates, refNames(engine)...)
		}
	}

	var matches []string
	for _, c := range candidates {
		if strings.HasPrefix(c, toComplete) {
			matches = append(matches, c)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

func refNames(engine vcs.Engine) []string {
	var names []string
	if branches, err := engine.Branches(); err == nil {
		for _, b := range branches {
			names = append(names, b.Name)
		}
	}
	if tags, err := engine.Tags(); err == nil {
		for _, t := range tags {
			names = append(names, t.Name)
		}
	}
	return names
}
