package cli

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/basalt/internal/logging"
	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/edit"
	"github.com/yaklabco/basalt/pkg/fsutil"
	"github.com/yaklabco/basalt/pkg/markdown"
	"github.com/yaklabco/basalt/pkg/mdast"
	"github.com/yaklabco/basalt/pkg/tasks"
)

type tasksFlags struct {
	output outputFlags
	toggle []int
	open   bool
	dryRun bool
}

func newTasksCommand(a *app) *cobra.Command {
	flags := &tasksFlags{}

	cmd := &cobra.Command{
		Use:   "tasks FILE",
		Short: "List or toggle the tasks of a Markdown file",
		Long: `List the task list items of a Markdown file with their line numbers.
--toggle LINE checks or unchecks the task starting on that line and saves
the file; the save is refused if the file changed while it was edited.
--dry-run prints the change as a unified diff instead.`,
		Example: `  basalt tasks todo.md --open
  basalt tasks todo.md --toggle 12
  basalt tasks todo.md --toggle 12,14 --dry-run`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(flags.toggle) > 0 {
				return a.toggleTasks(cmd, args[0], flags)
			}
			return a.listTasks(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntSliceVar(&flags.toggle, "toggle", nil, "toggle the tasks starting on these 1-based lines")
	cmd.Flags().BoolVar(&flags.open, "open", false, "list only unchecked tasks")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the toggle as a diff without saving")
	addOutputFlags(cmd, &flags.output)
	return cmd
}

func (a *app) listTasks(cmd *cobra.Command, path string, flags *tasksFlags) error {
	doc, err := a.load(cmd, path)
	if err != nil {
		return err
	}

	list := tasks.List(mdast.NewSource(doc.source), doc.nodes)
	if flags.open {
		open := list[:0]
		for _, t := range list {
			if !t.Done {
				open = append(open, t)
			}
		}
		list = open
	}

	return a.print(cmd, &flags.output, list, func(w io.Writer, s *pretty.Styles) error {
		return writeTasks(w, s, list)
	})
}

func (a *app) toggleTasks(cmd *cobra.Command, path string, flags *tasksFlags) error {
	if path == stdinPath {
		return usageError{errors.New("--toggle needs a file, not standard input")}
	}

	ctx := cmd.Context()
	source, stamp, err := fsutil.Read(ctx, path)
	if err != nil {
		return err
	}

	events, err := newLexer(a.cfg).Events(ctx, source)
	if err != nil {
		return err
	}
	src, nodes := mdast.NewSource(source), markdown.Build(events)

	lines := slices.Compact(slices.Sorted(slices.Values(flags.toggle)))
	edits := make([]edit.Edit, 0, len(lines))
	states := make([]bool, 0, len(lines))
	for _, line := range lines {
		e, done, err := tasks.ToggleEdit(src, nodes, line)
		if err != nil {
			return usageError{err}
		}
		edits = append(edits, e)
		states = append(states, done)
	}

	out, err := edit.Apply(source, edits...)
	if err != nil {
		return err
	}

	if flags.dryRun {
		_, err := io.WriteString(cmd.OutOrStdout(), edit.Diff(path, source, out))
		return err
	}

	if _, err := fsutil.Replace(ctx, stamp, out); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	logger := logging.FromContext(ctx)
	w := cmd.OutOrStdout()
	for i, line := range lines {
		state := "unchecked"
		if states[i] {
			state = "checked"
		}
		logger.Debug("toggled task", logging.FieldPath, path, "line", line, "state", state)
		if _, err := fmt.Fprintf(w, "%s:%d %s\n", path, line, state); err != nil {
			return err
		}
	}
	return nil
}

func writeTasks(w io.Writer, s *pretty.Styles, list []tasks.Task) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, s.Dim.Render("No tasks."))
		return err
	}
	for _, t := range list {
		box, text := "[ ]", t.Text
		if t.Done {
			box, text = s.Success.Render("[x]"), s.Dim.Render(t.Text)
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\n", s.Range.Render(fmt.Sprintf("%4d", t.Line)), box, text); err != nil {
			return err
		}
	}
	return nil
}
