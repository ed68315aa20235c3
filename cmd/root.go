// Package cmd wires the wb command-line surface. Commands stay thin: they
// parse flags, assemble the catalog and executor, and hand off to the
// engine or the interactive screen.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/priyamkaur/winbroom/internal/catalog"
	"github.com/priyamkaur/winbroom/internal/engine"
	"github.com/priyamkaur/winbroom/internal/resolve"
	"github.com/priyamkaur/winbroom/internal/tui"
	"github.com/priyamkaur/winbroom/pkg/logutils"
	"github.com/priyamkaur/winbroom/pkg/protected"
)

var (
	// Global flags
	debug   bool
	logFile string

	log       zerolog.Logger
	closeLogs = func() {}

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "wb",
	Short: "Reclaim disk space on Windows",
	Long: `WinBroom - Reclaim disk space on Windows.

Cleans developer tool caches, application caches, and system leftovers
from a curated catalog. Run without a subcommand for the interactive
screen, or use 'wb clean' for scripted cleanup.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "warn"
		if debug {
			level = "debug"
		}
		var err error
		log, closeLogs, err = logutils.New(level, logFile)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// When invoked without subcommand, show the interactive screen;
		// piped output gets help instead.
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			return cmd.Help()
		}
		return runInteractive()
	},
}

// Execute runs the root command.
func Execute() error {
	defer func() { closeLogs() }()
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed operation logs")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", defaultLogFile(), "Also write JSON logs to this file")

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// defaultLogFile is %LOCALAPPDATA%\winbroom\winbroom.log, or no file
// logging when LOCALAPPDATA is unset.
func defaultLogFile() string {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return ""
	}
	return filepath.Join(localAppData, "winbroom", "winbroom.log")
}

// buildCatalog assembles the built-in table plus user-configured rules.
func buildCatalog() (*catalog.Catalog, error) {
	extra := catalog.LoadCustomItems(catalog.DefaultConfigPath(), log)
	return catalog.New(extra...)
}

// buildExecutor wires the engine to the real OS.
func buildExecutor(env resolve.Env) *engine.Executor {
	return engine.NewExecutor(
		engine.NewActionRunner(log),
		engine.NewPrivilegeChecker(),
		protected.DefaultList(env.Lookup),
		log,
	)
}

// runInteractive launches the full-screen cleanup picker.
func runInteractive() error {
	cat, err := buildCatalog()
	if err != nil {
		return err
	}
	env := resolve.OSEnv()

	model := tui.New(cat, env, buildExecutor(env))
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
