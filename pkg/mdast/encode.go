package mdast

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// nodeView is the serialized shape of a Node, shared by JSON and YAML.
type nodeView struct {
	Kind     string `json:"kind" yaml:"kind"`
	Range    [2]int `json:"range" yaml:"range,flow"`
	Level    int    `json:"level,omitempty" yaml:"level,omitempty"`
	Callout  string `json:"callout,omitempty" yaml:"callout,omitempty"`
	Lang     string `json:"lang,omitempty" yaml:"lang,omitempty"`
	List     string `json:"list,omitempty" yaml:"list,omitempty"`
	Task     string `json:"task,omitempty" yaml:"task,omitempty"`
	Text     Text   `json:"text,omitempty" yaml:"text,omitempty"`
	Children []Node `json:"children,omitempty" yaml:"children,omitempty"`
}

func (n Node) view() nodeView {
	out := nodeView{
		Kind:  n.Kind().String(),
		Range: [2]int{n.SourceRange.Start, n.SourceRange.End},
		Text:  n.Text(),
	}

	switch v := n.MarkdownNode.(type) {
	case *Heading:
		out.Level = int(v.Level)
	case *BlockQuote:
		out.Callout = v.Kind.String()
		out.Children = v.Nodes
	case *CodeBlock:
		out.Lang = v.Lang
	case *List:
		out.List = v.Kind.String()
		out.Children = v.Nodes
	case *TaskListItem:
		out.Task = v.Kind.String()
	}

	return out
}

// MarshalJSON encodes the node as a flat object tagged with its kind.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.MarkdownNode == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.view())
}

// MarshalYAML encodes the node the same way as MarshalJSON.
func (n Node) MarshalYAML() (any, error) {
	if n.MarkdownNode == nil {
		return nil, nil
	}
	return n.view(), nil
}

// textNodeView is the serialized shape of a TextNode.
type textNodeView struct {
	Content string `json:"content" yaml:"content"`
	Style   string `json:"style,omitempty" yaml:"style,omitempty"`
}

// MarshalJSON encodes the run as {content, style}.
func (t TextNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(textNodeView{Content: t.Content, Style: t.Style.String()})
}

// MarshalYAML encodes the run as {content, style}.
func (t TextNode) MarshalYAML() (any, error) {
	return textNodeView{Content: t.Content, Style: t.Style.String()}, nil
}

// Dump writes an indented, one-node-per-line description of nodes.
func Dump(w io.Writer, nodes []Node) error {
	return Walk(nodes, func(n *Node, depth int) error {
		_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), Describe(*n))
		return err
	})
}

// Describe returns a single-line summary such as
// `Heading(H1) 0..13 "My Heading"`.
func Describe(n Node) string {
	var sb strings.Builder
	sb.WriteString(n.Kind().String())

	switch v := n.MarkdownNode.(type) {
	case *Heading:
		fmt.Fprintf(&sb, "(%s)", v.Level)
	case *BlockQuote:
		if v.Kind != CalloutNone {
			fmt.Fprintf(&sb, "(%s)", v.Kind)
		}
	case *CodeBlock:
		if v.Lang != "" {
			fmt.Fprintf(&sb, "(%s)", v.Lang)
		}
	case *List:
		fmt.Fprintf(&sb, "(%s)", v.Kind)
	case *TaskListItem:
		fmt.Fprintf(&sb, "(%s)", v.Kind)
	}

	fmt.Fprintf(&sb, " %s", n.SourceRange)

	if !n.Kind().IsContainer() {
		fmt.Fprintf(&sb, " %q", n.Text().String())
	}

	return sb.String()
}
