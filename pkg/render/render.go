// Package render draws a parsed document as styled terminal lines.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yaklabco/basalt/pkg/langdetect"
	"github.com/yaklabco/basalt/pkg/mdast"
)

// DefaultWidth is used when Options.Width is not positive.
const DefaultWidth = 80

const (
	quoteBar     = "┃ "
	listIndent   = "  "
	bulletMarker = "- "
	uncheckedBox = "□ "
	checkedBox   = "■ "
)

// Options configures rendering.
type Options struct {
	// Width is the number of columns to fill.
	Width int

	// Color enables ANSI styling. Without it the output is plain text.
	Color bool
}

type styles struct {
	h1, h2, h3, h4 lipgloss.Style
	bullet         lipgloss.Style
	box, checked   lipgloss.Style
	done           lipgloss.Style
	quote          lipgloss.Style
	callout        lipgloss.Style
	code           lipgloss.Style
	codeBlock      lipgloss.Style
	codeLabel      lipgloss.Style
}

func newStyles() styles {
	black := lipgloss.Color("0")
	return styles{
		h1:        lipgloss.NewStyle().Bold(true).Italic(true),
		h2:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
		h3:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		h4:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		bullet:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		box:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		checked:   lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		done:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true),
		quote:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		callout:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		code:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Background(black),
		codeBlock: lipgloss.NewStyle().Background(black),
		codeLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Background(black),
	}
}

type renderer struct {
	width int
	color bool
	st    styles
}

// Render returns the lines of nodes laid out for opts.Width columns.
func Render(nodes []mdast.Node, opts Options) []string {
	r := &renderer{width: opts.Width, color: opts.Color, st: newStyles()}
	if r.width <= 0 {
		r.width = DefaultWidth
	}

	var lines []string
	for i := range nodes {
		lines = append(lines, r.node(&nodes[i], "")...)
	}
	return lines
}

// String renders nodes and joins the lines.
func String(nodes []mdast.Node, opts Options) string {
	lines := Render(nodes, opts)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func (r *renderer) paint(style lipgloss.Style, s string) string {
	if !r.color || s == "" {
		return s
	}
	return style.Render(s)
}

// trailer is the blank line that separates top-level blocks.
func trailer(prefix string) []string {
	if prefix == "" {
		return []string{""}
	}
	return nil
}

func (r *renderer) node(n *mdast.Node, prefix string) []string {
	switch v := n.MarkdownNode.(type) {
	case *mdast.Heading:
		return r.heading(v.Level, v.Text.String(), prefix)

	case *mdast.Paragraph:
		return append(r.wrap(r.text(v.Text), prefix), trailer(prefix)...)

	case *mdast.Item:
		return []string{prefix + r.paint(r.st.bullet, bulletMarker) + r.text(v.Text)}

	case *mdast.TaskListItem:
		return []string{r.task(v, prefix)}

	case *mdast.CodeBlock:
		return append(r.codeBlock(v, prefix), trailer(prefix)...)

	case *mdast.List:
		return r.list(v, prefix)

	case *mdast.BlockQuote:
		return r.blockQuote(v, prefix)
	}
	return nil
}

func (r *renderer) text(t mdast.Text) string {
	var b strings.Builder
	for _, run := range t {
		if run.Style == mdast.StyleCode {
			b.WriteString(r.paint(r.st.code, run.Content))
			continue
		}
		b.WriteString(run.Content)
	}
	return b.String()
}

// wrap breaks s on word boundaries to fit after prefix. Words longer than
// the available width are kept whole.
func (r *renderer) wrap(s, prefix string) []string {
	limit := max(1, r.width-lipgloss.Width(prefix))
	wrapped := strings.Split(wordwrap.String(s, limit), "\n")

	lines := make([]string, len(wrapped))
	for i, line := range wrapped {
		lines[i] = prefix + line
	}
	return lines
}

func (r *renderer) heading(level mdast.HeadingLevel, title, prefix string) []string {
	var lines []string
	switch level {
	case mdast.H1:
		lines = []string{
			"",
			r.paint(r.st.h1, cases.Upper(language.Und).String(title)),
			strings.Repeat("▀", r.width),
			"",
		}
	case mdast.H2:
		lines = []string{
			r.paint(r.st.h2, title),
			r.paint(r.st.h2, strings.Repeat("═", r.width)),
		}
	case mdast.H3:
		lines = []string{r.paint(r.st.h3, "⬤  "+title), ""}
	case mdast.H4:
		lines = []string{r.paint(r.st.h4, "● "+title), ""}
	case mdast.H5:
		lines = []string{"◆ " + Script(title), ""}
	default:
		lines = []string{"✺ " + Script(title), ""}
	}

	if prefix != "" {
		for i := range lines {
			lines[i] = prefix + lines[i]
		}
	}
	return lines
}

func (r *renderer) task(t *mdast.TaskListItem, prefix string) string {
	if t.Kind == mdast.TaskChecked {
		return prefix + r.paint(r.st.checked, checkedBox) + r.paint(r.st.done, t.Text.String())
	}
	return prefix + r.paint(r.st.box, uncheckedBox) + r.text(t.Text)
}

func (r *renderer) list(l *mdast.List, prefix string) []string {
	var lines []string
	for i := range l.Nodes {
		child := &l.Nodes[i]
		switch v := child.MarkdownNode.(type) {
		case *mdast.TaskListItem:
			lines = append(lines, r.task(v, prefix))
		case *mdast.Item:
			marker := bulletMarker
			if l.Kind.Ordered {
				marker = strconv.FormatUint(l.Kind.ItemNumber(i), 10) + ". "
			}
			lines = append(lines, prefix+r.paint(r.st.bullet, marker)+r.text(v.Text))
		default:
			lines = append(lines, r.node(child, listIndent+prefix)...)
		}
	}
	return append(lines, trailer(prefix)...)
}

func (r *renderer) blockQuote(q *mdast.BlockQuote, prefix string) []string {
	bar := prefix + r.paint(r.st.quote, quoteBar)

	var lines []string
	if q.Kind != mdast.CalloutNone {
		lines = append(lines, bar+r.paint(r.st.callout, CalloutTitle(q.Kind)))
	}
	for i := range q.Nodes {
		if i > 0 || len(lines) > 0 {
			lines = append(lines, bar)
		}
		lines = append(lines, r.node(&q.Nodes[i], bar)...)
	}
	return append(lines, trailer(prefix)...)
}

// codeBlock draws the block on a background filling the width left after
// prefix, with the language in the top bar.
func (r *renderer) codeBlock(c *mdast.CodeBlock, prefix string) []string {
	lang := langdetect.Language(c)
	if lang == langdetect.Unknown {
		lang = ""
	}

	width := max(1, r.width-lipgloss.Width(prefix))
	lines := []string{prefix + r.codeLine(lang, r.st.codeLabel, width)}
	for _, line := range strings.Split(c.Text.String(), "\n") {
		lines = append(lines, prefix+r.codeLine(line, r.st.codeBlock, width))
	}
	return lines
}

func (r *renderer) codeLine(content string, style lipgloss.Style, width int) string {
	line := padding.String(" "+content+" ", uint(width))
	if !r.color {
		return strings.TrimRight(line, " ")
	}
	return style.Render(line)
}

// CalloutTitle names a callout kind for display, e.g. "Warning".
func CalloutTitle(kind mdast.CalloutKind) string {
	if kind == mdast.CalloutNone {
		return ""
	}
	return cases.Title(language.English).String(kind.String())
}
