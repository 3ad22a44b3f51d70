package mdast

import "strings"

// Style marks an inline run of text with presentation semantics.
type Style uint8

const (
	// StyleNone is plain text.
	StyleNone Style = iota

	// StyleCode is an inline code span.
	StyleCode
)

func (s Style) String() string {
	switch s {
	case StyleCode:
		return "code"
	default:
		return ""
	}
}

// TextNode is a single run of text with an optional style.
type TextNode struct {
	Content string
	Style   Style
}

// Plain returns an unstyled run.
func Plain(content string) TextNode {
	return TextNode{Content: content}
}

// Code returns a run styled as inline code.
func Code(content string) TextNode {
	return TextNode{Content: content, Style: StyleCode}
}

// Text is the ordered sequence of runs owned by a leaf node.
// Runs are never merged: one run per incoming text event.
type Text []TextNode

// NewText builds Text from a single plain run.
func NewText(content string) Text {
	return Text{Plain(content)}
}

// Push appends a run.
func (t *Text) Push(node TextNode) {
	*t = append(*t, node)
}

// String returns the concatenated content of every run, dropping styles.
func (t Text) String() string {
	switch len(t) {
	case 0:
		return ""
	case 1:
		return t[0].Content
	}

	var sb strings.Builder
	for _, run := range t {
		sb.WriteString(run.Content)
	}
	return sb.String()
}

// IsEmpty reports whether the text has no content at all.
func (t Text) IsEmpty() bool {
	for _, run := range t {
		if run.Content != "" {
			return false
		}
	}
	return true
}
