package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/reporter"
)

func newParseCommand(a *app) *cobra.Command {
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a Markdown file",
		Long: `Parse a Markdown file and print its syntax tree.

The text format prints one node per line with its kind, byte range and
text. JSON and YAML encode the full tree and can be filtered with a jq
query. FILE may be "-" to read standard input.`,
		Example: `  basalt parse README.md
  basalt parse notes.md --format json
  basalt parse notes.md -q '[.. | objects | select(.kind == "Heading") | .text[0].content]'
  cat notes.md | basalt parse - --format yaml --output tree.yaml`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, flags, doc.nodes, func(w io.Writer, s *pretty.Styles) error {
				return reporter.WriteTree(w, s, doc.nodes)
			})
		},
	}

	addOutputFlags(cmd, flags)
	return cmd
}
