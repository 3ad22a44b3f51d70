package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/mdast"
	"github.com/yaklabco/basalt/pkg/outline"
	"github.com/yaklabco/basalt/pkg/reporter"
)

// location describes what lies under a cursor.
type location struct {
	Offset  int          `json:"offset" yaml:"offset"`
	Line    int          `json:"line" yaml:"line"`
	Column  int          `json:"column" yaml:"column"`
	Section *sectionRef  `json:"section,omitempty" yaml:"section,omitempty"`
	Nodes   []mdast.Node `json:"nodes" yaml:"nodes"`
}

type sectionRef struct {
	Title  string `json:"title" yaml:"title"`
	Anchor string `json:"anchor" yaml:"anchor"`
	Index  int    `json:"index" yaml:"index"`
}

type locateFlags struct {
	output outputFlags
	offset int
	line   int
	column int
}

func newLocateCommand(a *app) *cobra.Command {
	flags := &locateFlags{}

	cmd := &cobra.Command{
		Use:   "locate FILE",
		Short: "Show the nodes and section under a cursor position",
		Long: `Locate the nodes whose source range contains a cursor, from the
outermost container to the innermost block, and the outline section the
cursor is in. The cursor is a byte offset or a 1-based line and column.`,
		Example: `  basalt locate notes.md --offset 120
  basalt locate notes.md --line 12 --col 3`,
		Args: usageArgs(cobra.ExactArgs(1)),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			byOffset := cmd.Flags().Changed("offset")
			byLine := cmd.Flags().Changed("line")
			if byOffset == byLine {
				return usageError{errors.New("give either --offset or --line (with optional --col)")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runLocate(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.offset, "offset", 0, "byte offset of the cursor")
	cmd.Flags().IntVar(&flags.line, "line", 0, "1-based line of the cursor")
	cmd.Flags().IntVar(&flags.column, "col", 1, "1-based byte column of the cursor")
	addOutputFlags(cmd, &flags.output)
	return cmd
}

func (a *app) runLocate(cmd *cobra.Command, path string, flags *locateFlags) error {
	doc, err := a.load(cmd, path)
	if err != nil {
		return err
	}

	src := mdast.NewSource(doc.source)

	offset := flags.offset
	if cmd.Flags().Changed("line") {
		var ok bool
		offset, ok = src.Offset(mdast.Position{Line: flags.line, Column: flags.column})
		if !ok {
			return usageError{fmt.Errorf("position %d:%d is outside %s", flags.line, flags.column, path)}
		}
	}
	if offset < 0 || offset > len(doc.source) {
		return usageError{fmt.Errorf("offset %d is outside %s (%d bytes)", offset, path, len(doc.source))}
	}

	pos := src.LineAt(offset)
	loc := location{Offset: offset, Line: pos.Line, Column: pos.Column}

	for _, n := range mdast.NodeAt(doc.nodes, offset) {
		loc.Nodes = append(loc.Nodes, *n)
	}
	if idx, item, ok := outline.Find(outline.Build(doc.nodes, len(doc.source)), offset); ok {
		loc.Section = &sectionRef{Title: item.Title, Anchor: item.Anchor, Index: idx}
	}

	logging.FromContext(cmd.Context()).Debug("located cursor",
		logging.FieldOffset, offset, logging.FieldNodes, len(loc.Nodes))

	return a.print(cmd, &flags.output, loc, func(w io.Writer, s *pretty.Styles) error {
		return writeLocation(w, s, loc)
	})
}

func writeLocation(w io.Writer, s *pretty.Styles, loc location) error {
	var b strings.Builder
	b.WriteString(s.KeyValue("position", fmt.Sprintf("%d:%d (offset %d)", loc.Line, loc.Column, loc.Offset)))
	if loc.Section != nil {
		b.WriteString(s.KeyValue("section", loc.Section.Title+" #"+loc.Section.Anchor))
	}
	if len(loc.Nodes) == 0 {
		b.WriteString(s.Dim.Render("No node at this position.") + "\n")
	}
	for depth, n := range loc.Nodes {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString(reporter.DescribeNode(s, n))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
