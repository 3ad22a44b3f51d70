// Package tasks lists and toggles the task list items of a document.
package tasks

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/yaklabco/basalt/pkg/edit"
	"github.com/yaklabco/basalt/pkg/mdast"
)

// ErrNoTask is returned when no task list item contains the offset.
var ErrNoTask = errors.New("no task at position")

// checkbox matches the marker of a task item after its bullet.
var checkbox = regexp.MustCompile(`\[[ xX]\]`)

// Task is a task list item with its position.
type Task struct {
	Text  string            `json:"text" yaml:"text"`
	Done  bool              `json:"done" yaml:"done"`
	Line  int               `json:"line" yaml:"line"`
	Range mdast.SourceRange `json:"-" yaml:"-"`
}

// List returns every task in document order, including tasks nested in
// quotes and lists.
func List(src *mdast.Source, nodes []mdast.Node) []Task {
	var tasks []Task
	for _, n := range mdast.FindByKind(nodes, mdast.NodeTaskListItem) {
		item, ok := n.MarkdownNode.(*mdast.TaskListItem)
		if !ok {
			continue
		}
		tasks = append(tasks, Task{
			Text:  item.Text.String(),
			Done:  item.Kind == mdast.TaskChecked,
			Line:  src.LineAt(n.SourceRange.Start).Line,
			Range: n.SourceRange,
		})
	}
	return tasks
}

// OnLine returns the task whose item starts on the 1-based line.
func OnLine(src *mdast.Source, nodes []mdast.Node, line int) (Task, bool) {
	for _, t := range List(src, nodes) {
		if t.Line == line {
			return t, true
		}
	}
	return Task{}, false
}

// ToggleEdit returns the edit that flips the checkbox of the task starting
// on line, and whether the task is done once the edit is applied.
func ToggleEdit(src *mdast.Source, nodes []mdast.Node, line int) (edit.Edit, bool, error) {
	task, ok := OnLine(src, nodes, line)
	if !ok {
		return edit.Edit{}, false, fmt.Errorf("%w: line %d", ErrNoTask, line)
	}

	first := src.LineContent(line)
	from := task.Range.Start - src.Lines[line-1].StartOffset
	if from < 0 || from > len(first) {
		return edit.Edit{}, false, fmt.Errorf("%w: line %d", ErrNoTask, line)
	}

	loc := checkbox.FindIndex(first[from:])
	if loc == nil {
		return edit.Edit{}, false, fmt.Errorf("%w: line %d has no checkbox", ErrNoTask, line)
	}

	mark := task.Range.Start + loc[0] + 1
	if src.Content[mark] == ' ' {
		return edit.Replace(mdast.Range(mark, mark+1), "x"), true, nil
	}
	return edit.Replace(mdast.Range(mark, mark+1), " "), false, nil
}

// Toggle flips the checkbox of the task starting on line and returns the
// new source and whether the task is now done. The source of src is not
// modified.
func Toggle(src *mdast.Source, nodes []mdast.Node, line int) ([]byte, bool, error) {
	e, done, err := ToggleEdit(src, nodes, line)
	if err != nil {
		return nil, false, err
	}
	out, err := edit.Apply(src.Content, e)
	if err != nil {
		return nil, false, err
	}
	return out, done, nil
}
