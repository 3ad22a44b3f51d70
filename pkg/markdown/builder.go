// Package markdown builds the nested Markdown AST from a flat event stream.
//
// Parse is the entry point: it lexes source text with goldmark and feeds
// the events to Build. Build never fails. Unsupported constructs are
// dropped and unmatched close events are ignored, so any finite stream
// yields some tree.
package markdown

import (
	"strings"

	"github.com/yaklabco/basalt/pkg/event"
	"github.com/yaklabco/basalt/pkg/mdast"
	goldmarklexer "github.com/yaklabco/basalt/pkg/parser/goldmark"
)

// Parse parses Markdown text into its top-level nodes.
func Parse(text string) []mdast.Node {
	return Build(goldmarklexer.Lex([]byte(text)))
}

// Build reconstructs the tree from events, consuming them once in order.
func Build(events []event.Event) []mdast.Node {
	b := &builder{events: events}
	return b.parseEvents(nil)
}

// builder holds the read position over the stream. Open containers live
// on the call stack of parseEvents.
type builder struct {
	events []event.Event
	pos    int
}

func (b *builder) next() (event.Event, bool) {
	if b.pos >= len(b.events) {
		return event.Event{}, false
	}
	ev := b.events[b.pos]
	b.pos++
	return ev, true
}

// parseEvents collects nodes until the End matching current, or until the
// stream runs out when current is nil.
func (b *builder) parseEvents(current *event.Tag) []mdast.Node {
	var nodes []mdast.Node

	for {
		ev, ok := b.next()
		if !ok {
			return nodes
		}

		switch ev.Kind {
		case event.KindStart:
			if node, ok := b.parseTag(ev.Tag, ev.Range); ok {
				nodes = append(nodes, node)
			}

		case event.KindEnd:
			if current != nil && current.Kind == ev.Tag.Kind {
				return nodes
			}

		case event.KindText:
			pushText(nodes, mdast.Plain(ev.Text))

		case event.KindCode:
			pushText(nodes, mdast.Code(ev.Text))

		case event.KindTaskListMarker:
			markTask(nodes, ev.Checked)
		}
	}
}

// parseTag opens a node for tag. Containers consume events through their
// matching End; leaves are returned empty and filled by later text events.
// Unsupported block constructs are consumed whole and yield no node.
func (b *builder) parseTag(tag event.Tag, rng mdast.SourceRange) (mdast.Node, bool) {
	switch tag.Kind {
	case event.TagBlockQuote:
		quote := &mdast.BlockQuote{Kind: calloutKind(tag.Callout)}
		quote.Nodes = b.parseEvents(&tag)
		return mdast.NewNode(quote, rng), true

	case event.TagList:
		list := &mdast.List{Kind: listKind(tag)}
		list.Nodes = b.parseEvents(&tag)
		return mdast.NewNode(list, rng), true

	case event.TagHeading:
		return mdast.NewNode(&mdast.Heading{Level: mdast.HeadingLevelOf(tag.Level)}, rng), true

	case event.TagParagraph:
		return mdast.NewNode(&mdast.Paragraph{}, rng), true

	case event.TagCodeBlock:
		return mdast.NewNode(&mdast.CodeBlock{Lang: codeLang(tag)}, rng), true

	case event.TagItem:
		return mdast.NewNode(&mdast.Item{}, rng), true

	case event.TagHTMLBlock, event.TagTable, event.TagFootnoteDefinition,
		event.TagMetadataBlock, event.TagDefinitionList:
		b.skip(tag)
	}

	return mdast.Node{}, false
}

// skip consumes events up to and including the End that closes tag.
func (b *builder) skip(tag event.Tag) {
	depth := 1
	for depth > 0 {
		ev, ok := b.next()
		if !ok {
			return
		}
		switch {
		case ev.Kind == event.KindStart && ev.Tag.Kind == tag.Kind:
			depth++
		case ev.Kind == event.KindEnd && ev.Tag.Kind == tag.Kind:
			depth--
		}
	}
}

// pushText routes a run into the innermost leaf of the last node. Text
// before any node at this level has no owner and is dropped.
func pushText(nodes []mdast.Node, run mdast.TextNode) {
	if len(nodes) == 0 {
		return
	}
	nodes[len(nodes)-1].PushText(run)
}

// markTask turns the just-opened Item into a TaskListItem in place,
// keeping its range and any text it already holds.
func markTask(nodes []mdast.Node, checked bool) {
	if len(nodes) == 0 {
		return
	}

	last := &nodes[len(nodes)-1]
	item, ok := last.MarkdownNode.(*mdast.Item)
	if !ok {
		return
	}

	last.MarkdownNode = &mdast.TaskListItem{
		Kind: mdast.TaskKindOf(checked),
		Text: item.Text,
	}
}

func calloutKind(c event.Callout) mdast.CalloutKind {
	switch c {
	case event.CalloutNote:
		return mdast.CalloutNote
	case event.CalloutTip:
		return mdast.CalloutTip
	case event.CalloutImportant:
		return mdast.CalloutImportant
	case event.CalloutWarning:
		return mdast.CalloutWarning
	case event.CalloutCaution:
		return mdast.CalloutCaution
	default:
		return mdast.CalloutNone
	}
}

func listKind(tag event.Tag) mdast.ListKind {
	if tag.Ordered {
		return mdast.Ordered(tag.ListStart)
	}
	return mdast.Unordered()
}

// codeLang takes the first word of a fence's info string.
func codeLang(tag event.Tag) string {
	if !tag.Fenced {
		return ""
	}
	fields := strings.Fields(tag.Info)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
