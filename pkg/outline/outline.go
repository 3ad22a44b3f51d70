// Package outline builds a navigable table of contents from the headings
// of a parsed document.
package outline

import (
	"strconv"

	"github.com/gosimple/slug"

	"github.com/yaklabco/basalt/pkg/mdast"
)

// Item is one heading in the outline.
type Item struct {
	Level  mdast.HeadingLevel `json:"level" yaml:"level"`
	Title  string             `json:"title" yaml:"title"`
	Anchor string             `json:"anchor" yaml:"anchor"`

	// Index is the position of the heading among the top-level nodes.
	Index int `json:"index" yaml:"index"`

	// Range runs from the heading to the next heading of any level, or to
	// the end of the document.
	Range mdast.SourceRange `json:"-" yaml:"-"`

	Children []Item `json:"children,omitempty" yaml:"children,omitempty"`
}

type heading struct {
	index int
	level mdast.HeadingLevel
	title string
	start int
}

// Build returns the outline of nodes. Only top-level headings take part.
// Deeper headings nest under the closest preceding shallower heading.
// sourceLen closes the range of the last heading.
func Build(nodes []mdast.Node, sourceLen int) []Item {
	var headings []heading
	for i, node := range nodes {
		if h, ok := node.MarkdownNode.(*mdast.Heading); ok {
			headings = append(headings, heading{
				index: i,
				level: h.Level,
				title: h.Text.String(),
				start: node.SourceRange.Start,
			})
		}
	}

	b := &builder{headings: headings, end: sourceLen, anchors: make(map[string]int)}
	return b.build(0)
}

type builder struct {
	headings []heading
	pos      int
	end      int
	anchors  map[string]int
}

// build collects headings deeper than parent (0 for the top level).
func (b *builder) build(parent mdast.HeadingLevel) []Item {
	var items []Item

	for b.pos < len(b.headings) {
		h := b.headings[b.pos]
		if parent != 0 && h.level <= parent {
			break
		}
		b.pos++

		end := b.end
		if b.pos < len(b.headings) {
			end = b.headings[b.pos].start
		}

		item := Item{
			Level:  h.level,
			Title:  h.title,
			Anchor: b.anchor(h.title),
			Index:  h.index,
			Range:  mdast.Range(h.start, max(h.start, end)),
		}
		if b.pos < len(b.headings) && b.headings[b.pos].level > h.level {
			item.Children = b.build(h.level)
		}
		items = append(items, item)
	}

	return items
}

// anchor slugifies title and disambiguates repeats GitHub style:
// intro, intro-1, intro-2.
func (b *builder) anchor(title string) string {
	base := slug.Make(title)
	n := b.anchors[base]
	b.anchors[base] = n + 1
	if n == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}

// Flatten lists items and their descendants in document order.
func Flatten(items []Item) []Item {
	var out []Item
	for _, item := range items {
		out = append(out, item)
		out = append(out, Flatten(item.Children)...)
	}
	return out
}

// Find returns the flattened position and item whose range contains
// offset.
func Find(items []Item, offset int) (int, Item, bool) {
	for i, item := range Flatten(items) {
		if item.Range.Contains(offset) {
			return i, item, true
		}
	}
	return -1, Item{}, false
}
