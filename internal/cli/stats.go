package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/reporter"
	"github.com/yaklabco/basalt/pkg/runner"
)

type statsFlags struct {
	output  outputFlags
	exclude []string
	jobs    int
	follow  bool
}

func newStatsCommand(a *app) *cobra.Command {
	flags := &statsFlags{}

	cmd := &cobra.Command{
		Use:   "stats [paths...]",
		Short: "Count words, characters, nodes and code languages",
		Long: `Parse Markdown files and report word and character counts, node counts
and the languages of their code blocks. Directories are searched
recursively for .md and .markdown files, and the current directory is
used when no path is given. "-" reads one document from standard input.
Code blocks without a fence language are identified from their content.`,
		Example: `  basalt stats README.md
  basalt stats docs --exclude 'archive/**'
  basalt stats . --format json -q '.stats.counts'`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStats(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns of files and directories to skip")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (default: number of CPUs)")
	cmd.Flags().BoolVar(&flags.follow, "follow-symlinks", false, "walk into symlinked directories")
	addOutputFlags(cmd, &flags.output)
	return cmd
}

func (a *app) runStats(cmd *cobra.Command, args []string, flags *statsFlags) error {
	ctx := cmd.Context()

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	if len(args) == 1 && args[0] == stdinPath {
		doc, err := a.load(cmd, stdinPath)
		if err != nil {
			return err
		}
		outcome := runner.Measure(stdinPath, doc.source, doc.nodes)
		outcome.Nodes = nil
		result := runner.NewResult(outcome)
		return a.print(cmd, &flags.output, result, func(w io.Writer, s *pretty.Styles) error {
			return reporter.WriteStats(w, s, result, "")
		})
	}

	result, err := runner.Run(ctx, runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.follow,
		Jobs:           flags.jobs,
		Lexer:          newLexer(a.cfg),
	})
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	err = a.print(cmd, &flags.output, result, func(w io.Writer, s *pretty.Styles) error {
		return reporter.WriteStats(w, s, result, workDir)
	})
	if err != nil {
		return err
	}

	if result.HasErrors() {
		return fmt.Errorf("%d of %d files could not be processed",
			result.Stats.FilesErrored, result.Stats.FilesDiscovered)
	}
	return nil
}
