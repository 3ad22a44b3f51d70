package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/render"
)

func newRenderCommand(a *app) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a Markdown file for the terminal",
		Long: `Render a Markdown file as styled terminal text: decorated headings,
bulleted and numbered lists, task boxes, quote bars with callout titles and
padded code blocks. The width defaults to the configured render.width, then
to the terminal width.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.load(cmd, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !cmd.Flags().Changed("width") {
				width = a.cfg.Render.Width
			}
			if width <= 0 {
				width = terminalWidth(out)
			}

			_, err = io.WriteString(out, render.String(doc.nodes, render.Options{
				Width: width,
				Color: pretty.IsColorEnabled(string(a.cfg.Render.Color), out),
			}))
			return err
		},
	}

	cmd.Flags().IntVarP(&width, "width", "w", 0, "wrap width in columns (default: terminal width)")
	return cmd
}

// terminalWidth returns the width of the terminal behind w, or
// render.DefaultWidth when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return render.DefaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return render.DefaultWidth
	}
	return width
}
