package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/pkg/config"
	"github.com/yaklabco/basalt/pkg/fsutil"
	"github.com/yaklabco/basalt/pkg/markdown"
	"github.com/yaklabco/basalt/pkg/mdast"
	goldmarklexer "github.com/yaklabco/basalt/pkg/parser/goldmark"
	"github.com/yaklabco/basalt/pkg/reporter"
)

// stdinPath names standard input as a command argument.
const stdinPath = "-"

// document is a parsed input file.
type document struct {
	path   string
	source []byte
	nodes  []mdast.Node
}

// newLexer configures the lexer from the parser section of cfg.
func newLexer(cfg *config.Config) *goldmarklexer.Lexer {
	return goldmarklexer.New(
		goldmarklexer.WithFlavor(string(cfg.Parser.Flavor)),
		goldmarklexer.WithCallouts(config.BoolValue(cfg.Parser.Callouts, true)),
		goldmarklexer.WithFrontMatter(config.BoolValue(cfg.Parser.FrontMatter, true)),
	)
}

// readInput reads path, or standard input for "-".
func readInput(ctx context.Context, cmd *cobra.Command, path string) ([]byte, error) {
	if path == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return content, nil
	}

	content, _, err := fsutil.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	return content, nil
}

// load reads and parses one input.
func (a *app) load(cmd *cobra.Command, path string) (*document, error) {
	ctx := cmd.Context()

	source, err := readInput(ctx, cmd, path)
	if err != nil {
		return nil, err
	}

	events, err := newLexer(a.cfg).Events(ctx, source)
	if err != nil {
		return nil, err
	}
	nodes := markdown.Build(events)

	logging.FromContext(ctx).Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldBytes, len(source),
		logging.FieldEvents, len(events),
		logging.FieldNodes, len(nodes),
	)

	return &document{path: path, source: source, nodes: nodes}, nil
}

// outputFlags are shared by commands that print structured results.
type outputFlags struct {
	format string
	query  string
	output string
}

func addOutputFlags(cmd *cobra.Command, flags *outputFlags) {
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "output format: text, json, yaml (default from config)")
	cmd.Flags().StringVarP(&flags.query, "query", "q", "", "jq filter applied to structured output")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
}

// print writes data through a reporter.Printer configured from flags and
// the loaded configuration. With --output the result is written to the
// file atomically.
func (a *app) print(cmd *cobra.Command, flags *outputFlags, data any, text reporter.TextFunc) error {
	formatName := string(a.cfg.Output.Format)
	if flags.format != "" {
		formatName = flags.format
	}
	format, err := reporter.ParseFormat(formatName)
	if err != nil {
		return usageError{err}
	}

	var buf bytes.Buffer
	w := cmd.OutOrStdout()
	color := string(a.cfg.Render.Color)
	if flags.output != "" {
		w = &buf
		color = string(config.ColorNever)
	}

	printer, err := reporter.New(reporter.Options{
		Writer: w,
		Format: format,
		Query:  flags.query,
		Color:  color,
	})
	if err != nil {
		return usageError{err}
	}

	if err := printer.Print(cmd.Context(), data, text); err != nil {
		return err
	}

	if flags.output == "" {
		return nil
	}

	if err := fsutil.WriteAtomic(cmd.Context(), flags.output, buf.Bytes(), fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logging.FromContext(cmd.Context()).Info("output written",
		logging.FieldOutput, flags.output,
		logging.FieldFormat, printer.Format(),
	)
	return nil
}
