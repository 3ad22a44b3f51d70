package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/outline"
	"github.com/yaklabco/basalt/pkg/reporter"
)

func newOutlineCommand(a *app) *cobra.Command {
	flags := &outputFlags{}
	var flat bool

	cmd := &cobra.Command{
		Use:   "outline FILE",
		Short: "Print the heading outline of a Markdown file",
		Long: `Print the table of contents of a Markdown file. Deeper headings nest
under the closest shallower heading before them; each entry carries the
anchor a renderer would link to.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			items := outline.Build(doc.nodes, len(doc.source))
			if flat {
				items = outline.Flatten(items)
				for i := range items {
					items[i].Children = nil
				}
			}

			return a.print(cmd, flags, items, func(w io.Writer, s *pretty.Styles) error {
				return reporter.WriteOutline(w, s, items)
			})
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "list headings without nesting")
	addOutputFlags(cmd, flags)
	return cmd
}
