// Package cli implements the command-line interface for gitnav.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/kilupskalvis/gitnav/internal/config"
	"github.com/kilupskalvis/gitnav/internal/core"
	"github.com/kilupskalvis/gitnav/internal/store"
	"github.com/kilupskalvis/gitnav/internal/vcs"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for a gitnav invocation
type cmdContext struct {
	Config    *config.Config
	Engine    *vcs.GitEngine
	Navigator *core.Navigator
	Store     *store.Store // nil unless the journal is enabled
	Logger    *slog.Logger
	Out       io.Writer
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// initContext opens the repository containing the working directory,
// loads config and the commit history.
func initContext(out io.Writer) *cmdContext {
	cwd, err := os.Getwd()
	if err != nil {
		exitError("%v", err)
	}

	engine, err := vcs.Open(cwd)
	if err != nil {
		exitError("%v", err)
	}

	cfg, err := config.Load(engine.GitDir())
	if err != nil {
		exitError("%v", err)
	}

	logger := newLogger(cfg.LogLevel)
	if !cfg.Color || noColor {
		color.NoColor = true
	}
	logger.Debug("opened repository", "git_dir", engine.GitDir())

	nav, err := core.NewNavigator(engine)
	if err != nil {
		exitError("%v", err)
	}
	logger.Debug("loaded history", "commits", len(nav.History()), "head", nav.InitialHead())

	return &cmdContext{Config: cfg, Engine: engine, Navigator: nav, Logger: logger, Out: out}
}

// openJournal opens the journal database when enabled in config
func (c *cmdContext) openJournal() error {
	if !c.Config.Journal || c.Store != nil {
		return nil
	}
	if c.Config.GitDir() == "" {
		return fmt.Errorf("journal requires an on-disk repository")
	}

	st, err := store.New(c.Config.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	if err := st.Initialize(); err != nil {
		st.Close()
		return err
	}
	c.Store = st
	return nil
}

// newLogger builds the stderr logger; --verbose forces debug
func newLogger(levelName string) *slog.Logger {
	var level slog.Level
	switch levelName {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

var (
	showList    bool
	showWhere   bool
	showJournal bool
	limit       int
	noColor     bool
	verbose     bool
	writeConfig bool
	completion  string
)

var rootCmd = &cobra.Command{
	Use:   "gitnav <next|prev|init|head|N|branch|tag|hash>",
	Short: "Step through git history",
	Long: `gitnav moves the working tree through a repository's commit history in
chronological order, or jumps straight to a commit, branch or tag.
Every move leaves HEAD detached at the target commit.

Targets, matched in this order:
  init      the oldest commit
  head      the newest commit
  next      one commit newer than the current one
  prev      one commit older than the current one
  N         the commit at position N (0 is the oldest)
  <branch>  the commit a local branch points to
  <tag>     the commit a tag points to
  <hash>    the oldest commit whose hash starts with the given prefix

Examples:
  gitnav init        # Go to the first commit
  gitnav next        # Step forward one commit
  gitnav 12          # Jump to commit number 12
  gitnav v1.2.0      # Jump to a tag
  gitnav --list      # Show the numbered history`,
	Args:              cobra.RangeArgs(0, 1),
	ValidArgsFunction: completeTargets,
	SilenceUsage:      true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Run:               runRoot,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVarP(&showList, "list", "l", false, "Show the numbered commit history")
	flags.BoolVarP(&showWhere, "where", "w", false, "Show the current position without moving")
	flags.BoolVar(&showJournal, "journal", false, "Show recorded navigations")
	flags.IntVarP(&limit, "n", "n", 0, "Limit the number of entries shown by --list and --journal")
	flags.BoolVar(&noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr")
	flags.BoolVar(&writeConfig, "write-config", false, "Write the effective configuration to the repository")
	flags.StringVar(&completion, "completion", "", "Generate shell completion script (bash, zsh, fish)")
}

func runRoot(cmd *cobra.Command, args []string) {
	if completion != "" {
		runCompletion(cmd, completion)
		return
	}

	c := initContext(cmd.OutOrStdout())
	defer c.Close()

	switch {
	case writeConfig:
		runWriteConfig(c)
	case showList:
		runList(c)
	case showJournal:
		runJournal(c)
	case showWhere:
		runWhere(c)
	case len(args) == 1:
		runNavigate(c, args[0])
	default:
		c.Close()
		exitError("a direction or target is required (see --help)")
	}
}

func runWriteConfig(c *cmdContext) {
	if err := c.Config.Save(); err != nil {
		c.Close()
		exitError("%v", err)
	}
	fmt.Fprintf(c.Out, "Wrote %s\n", config.ConfigFile)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// shortHash returns first 7 characters of a hash
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
