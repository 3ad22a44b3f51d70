package reporter

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/basalt/internal/ui/pretty"
	"github.com/yaklabco/basalt/pkg/event"
	"github.com/yaklabco/basalt/pkg/mdast"
	"github.com/yaklabco/basalt/pkg/outline"
	"github.com/yaklabco/basalt/pkg/runner"
)

// WriteTree writes one line per node, indented by depth.
func WriteTree(w io.Writer, s *pretty.Styles, nodes []mdast.Node) error {
	return mdast.Walk(nodes, func(n *mdast.Node, depth int) error {
		_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), DescribeNode(s, *n))
		return err
	})
}

// DescribeNode is the styled form of mdast.Describe.
func DescribeNode(s *pretty.Styles, n mdast.Node) string {
	label := n.Kind().String()
	if attr := nodeAttr(n); attr != "" {
		label += "(" + attr + ")"
	}

	line := s.Kind.Render(label) + " " + s.Range.Render(n.SourceRange.String())
	if !n.Kind().IsContainer() {
		line += " " + s.Text.Render(strconv.Quote(n.Text().String()))
	}
	return line
}

func nodeAttr(n mdast.Node) string {
	switch v := n.MarkdownNode.(type) {
	case *mdast.Heading:
		return v.Level.String()
	case *mdast.BlockQuote:
		if v.Kind != mdast.CalloutNone {
			return v.Kind.String()
		}
	case *mdast.CodeBlock:
		return v.Lang
	case *mdast.List:
		return v.Kind.String()
	case *mdast.TaskListItem:
		return v.Kind.String()
	}
	return ""
}

// WriteEvents writes one event per line, indented by tag nesting.
func WriteEvents(w io.Writer, s *pretty.Styles, events []event.Event) error {
	depth := 0
	for _, ev := range events {
		if ev.Kind == event.KindEnd {
			depth = max(0, depth-1)
		}

		line := strings.Repeat("  ", depth) + s.Kind.Render(ev.Kind.String())
		switch ev.Kind {
		case event.KindStart, event.KindEnd:
			line += " " + ev.Tag.String()
		case event.KindTaskListMarker:
			line += " " + strconv.FormatBool(ev.Checked)
		case event.KindSoftBreak, event.KindHardBreak, event.KindRule:
		default:
			line += " " + s.Text.Render(strconv.Quote(ev.Text))
		}
		line += " " + s.Range.Render(ev.Range.String())

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}

		if ev.Kind == event.KindStart {
			depth++
		}
	}
	return nil
}

// WriteOutline writes the outline as an indented list with anchors.
func WriteOutline(w io.Writer, s *pretty.Styles, items []outline.Item) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, s.Dim.Render("No headings."))
		return err
	}
	return writeOutline(w, s, items, 0)
}

func writeOutline(w io.Writer, s *pretty.Styles, items []outline.Item, depth int) error {
	for _, item := range items {
		_, err := fmt.Fprintf(w, "%s%s %s %s\n",
			strings.Repeat("  ", depth),
			s.Kind.Render(item.Level.String()),
			s.Bold.Render(item.Title),
			s.Dim.Render("#"+item.Anchor))
		if err != nil {
			return err
		}
		if err := writeOutline(w, s, item.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// WriteStats writes a per-file table followed by the totals. Paths are
// shown relative to workDir when possible.
func WriteStats(w io.Writer, s *pretty.Styles, result *runner.Result, workDir string) error {
	if result == nil || len(result.Files) == 0 {
		_, err := fmt.Fprintln(w, s.Dim.Render("No Markdown files found."))
		return err
	}

	table := pretty.Table{Headers: []string{"FILE", "WORDS", "CHARS", "NODES", "LANGUAGES"}}
	for _, f := range result.Files {
		path := relPath(f.Path, workDir)
		if f.Error != nil {
			table.AddRow(s.Path.Render(path), "-", "-", "-", s.Error.Render("error: "+f.Error.Error()))
			continue
		}
		table.AddRow(
			s.Path.Render(path),
			strconv.Itoa(f.Counts.Words),
			strconv.Itoa(f.Counts.Chars),
			strconv.Itoa(sum(f.Kinds)),
			languageList(f.Languages),
		)
	}

	if _, err := io.WriteString(w, table.Render(s)); err != nil {
		return err
	}

	st := result.Stats
	summary := fmt.Sprintf("\n%d %s: %s\n",
		st.FilesProcessed, pretty.Plural(st.FilesProcessed, "file"),
		s.FormatCounts(st.Counts.Words, st.Counts.Chars))
	if _, err := io.WriteString(w, summary); err != nil {
		return err
	}

	if st.FilesErrored > 0 {
		_, err := fmt.Fprintln(w, s.Error.Render(fmt.Sprintf("%d %s failed", st.FilesErrored, pretty.Plural(st.FilesErrored, "file"))))
		return err
	}
	return nil
}

// WriteKinds writes node counts by kind, sorted by kind name.
func WriteKinds(w io.Writer, s *pretty.Styles, kinds map[string]int) error {
	for _, kind := range slices.Sorted(maps.Keys(kinds)) {
		if _, err := io.WriteString(w, s.KeyValue(kind, kinds[kind])); err != nil {
			return err
		}
	}
	return nil
}

func relPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	if rel, err := filepath.Rel(workDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

func sum(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// languageList renders counts as "go×2, rust" sorted by name.
func languageList(langs map[string]int) string {
	parts := make([]string, 0, len(langs))
	for _, lang := range slices.Sorted(maps.Keys(langs)) {
		if n := langs[lang]; n > 1 {
			parts = append(parts, fmt.Sprintf("%s×%d", lang, n))
		} else {
			parts = append(parts, lang)
		}
	}
	return strings.Join(parts, ", ")
}
