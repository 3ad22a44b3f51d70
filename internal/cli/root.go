// Package cli provides the Cobra command structure for basalt.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/configloader"
	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

// app is the state shared by every subcommand of one invocation.
type app struct {
	info BuildInfo

	debug      bool
	configPath string
	color      string

	// Set by the root pre-run hook.
	cfg    *config.Config
	loaded *configloader.LoadResult
	logger *log.Logger
}

// NewRootCommand creates the root basalt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{info: info}

	rootCmd := &cobra.Command{
		Use:   "basalt",
		Short: "Parse, inspect and render Markdown notes",
		Long: `basalt turns Markdown into a small, positioned syntax tree and puts it to work.

It parses CommonMark and GitHub Flavored Markdown, including task lists and
callouts, into headings, paragraphs, quotes, lists and code blocks that keep
their byte ranges in the source. Commands dump the tree, build an outline,
render notes for the terminal, count words and locate the node under a
cursor. Obsidian vaults are discovered from the Obsidian configuration.`,
		PersistentPreRunE: a.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&a.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(
		newParseCommand(a),
		newEventsCommand(a),
		newOutlineCommand(a),
		newRenderCommand(a),
		newStatsCommand(a),
		newLocateCommand(a),
		newTasksCommand(a),
		newVaultsCommand(a),
		newNotesCommand(a),
		newConfigCommand(a),
		newVersionCommand(a),
	)

	newHelpRenderer(colorFlag(os.Args[1:]), os.Stdout).install(rootCmd)

	return rootCmd
}

// colorFlag finds --color in raw arguments. Help is configured before
// flags are parsed.
func colorFlag(args []string) string {
	for i, arg := range args {
		if v, ok := strings.CutPrefix(arg, "--color="); ok {
			return v
		}
		if arg == "--color" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return string(config.ColorAuto)
}

// setup loads the configuration and installs the logger in the command
// context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cli := &config.Config{}
	if cmd.Flags().Changed("color") {
		cli.Render.Color = config.ColorMode(a.color)
	}
	if a.debug {
		cli.LogLevel = "debug"
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		ExplicitPath: a.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	a.loaded = loaded
	a.cfg = loaded.Config
	a.logger = newLogger(cmd, a.cfg.LogLevel)
	logging.SetDefault(a.logger)

	if len(loaded.LoadedFrom) > 0 {
		a.logger.Debug("configuration loaded", "files", loaded.LoadedFrom)
	}

	cmd.SetContext(logging.WithLogger(ctx, a.logger))
	return nil
}

// newLogger returns a terminal logger when stderr is a TTY and a plain one
// writing to the command's error stream otherwise.
func newLogger(cmd *cobra.Command, level string) *log.Logger {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return logging.NewInteractive(level)
	}
	return logging.NewWriter(cmd.ErrOrStderr(), level)
}
