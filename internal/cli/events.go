package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/event"
	"github.com/yaklabco/basalt/pkg/reporter"
)

// eventView is the encoded form of an event.
type eventView struct {
	Kind    string `json:"kind" yaml:"kind"`
	Tag     string `json:"tag,omitempty" yaml:"tag,omitempty"`
	Text    string `json:"text,omitempty" yaml:"text,omitempty"`
	Checked *bool  `json:"checked,omitempty" yaml:"checked,omitempty"`
	Range   [2]int `json:"range" yaml:"range,flow"`
}

func viewEvents(events []event.Event) []eventView {
	views := make([]eventView, 0, len(events))
	for _, ev := range events {
		v := eventView{
			Kind:  ev.Kind.String(),
			Text:  ev.Text,
			Range: [2]int{ev.Range.Start, ev.Range.End},
		}
		switch ev.Kind {
		case event.KindStart, event.KindEnd:
			v.Tag = ev.Tag.String()
		case event.KindTaskListMarker:
			checked := ev.Checked
			v.Checked = &checked
		}
		views = append(views, v)
	}
	return views
}

func newEventsCommand(a *app) *cobra.Command {
	flags := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "events FILE",
		Short: "Print the lexical event stream of a Markdown file",
		Long: `Print the flat stream of start, end and text events that the tree is
built from. Useful when a document does not parse the way you expect.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readInput(cmd.Context(), cmd, args[0])
			if err != nil {
				return err
			}

			events, err := newLexer(a.cfg).Events(cmd.Context(), source)
			if err != nil {
				return fmt.Errorf("lex %s: %w", args[0], err)
			}

			return a.print(cmd, flags, viewEvents(events), func(w io.Writer, s *pretty.Styles) error {
				return reporter.WriteEvents(w, s, events)
			})
		},
	}

	addOutputFlags(cmd, flags)
	return cmd
}
