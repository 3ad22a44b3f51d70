// Package event defines the flat lexical event stream the tree builder
// consumes: open/close tags around block and inline constructs, and atomic
// content events, each paired with the byte range it was lexed from.
package event

import (
	"fmt"
	"strconv"

	"github.com/yaklabco/basalt/pkg/mdast"
)

// Kind classifies an event.
type Kind uint8

// Event kinds.
const (
	KindStart Kind = iota
	KindEnd
	KindText
	KindCode
	KindTaskListMarker
	KindHTML
	KindInlineHTML
	KindSoftBreak
	KindHardBreak
	KindRule
	KindFootnoteReference
	KindInlineMath
	KindDisplayMath
)

var kindNames = [...]string{
	KindStart:             "Start",
	KindEnd:               "End",
	KindText:              "Text",
	KindCode:              "Code",
	KindTaskListMarker:    "TaskListMarker",
	KindHTML:              "Html",
	KindInlineHTML:        "InlineHtml",
	KindSoftBreak:         "SoftBreak",
	KindHardBreak:         "HardBreak",
	KindRule:              "Rule",
	KindFootnoteReference: "FootnoteReference",
	KindInlineMath:        "InlineMath",
	KindDisplayMath:       "DisplayMath",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Event is one element of the stream.
type Event struct {
	Kind Kind

	// Tag is set for KindStart and KindEnd.
	Tag Tag

	// Text is the payload of Text, Code, HTML, InlineHTML, math and
	// footnote reference events.
	Text string

	// Checked is the payload of KindTaskListMarker.
	Checked bool

	// Range is the source span the event was lexed from.
	Range mdast.SourceRange
}

// Start opens tag.
func Start(tag Tag, r mdast.SourceRange) Event {
	return Event{Kind: KindStart, Tag: tag, Range: r}
}

// End closes tag.
func End(tag Tag, r mdast.SourceRange) Event {
	return Event{Kind: KindEnd, Tag: tag, Range: r}
}

// Text is a run of plain text.
func Text(text string, r mdast.SourceRange) Event {
	return Event{Kind: KindText, Text: text, Range: r}
}

// Code is an inline code span.
func Code(text string, r mdast.SourceRange) Event {
	return Event{Kind: KindCode, Text: text, Range: r}
}

// TaskMarker is a task list checkbox.
func TaskMarker(checked bool, r mdast.SourceRange) Event {
	return Event{Kind: KindTaskListMarker, Checked: checked, Range: r}
}

// Atom returns a payload-free event such as a break or rule.
func Atom(kind Kind, r mdast.SourceRange) Event {
	return Event{Kind: kind, Range: r}
}

// Raw returns a payload event of the given kind (HTML, math, footnote reference).
func Raw(kind Kind, text string, r mdast.SourceRange) Event {
	return Event{Kind: kind, Text: text, Range: r}
}

func (e Event) String() string {
	switch e.Kind {
	case KindStart, KindEnd:
		return fmt.Sprintf("%s(%s) %s", e.Kind, e.Tag, e.Range)
	case KindTaskListMarker:
		return fmt.Sprintf("%s(%t) %s", e.Kind, e.Checked, e.Range)
	case KindSoftBreak, KindHardBreak, KindRule:
		return fmt.Sprintf("%s %s", e.Kind, e.Range)
	default:
		return fmt.Sprintf("%s(%q) %s", e.Kind, e.Text, e.Range)
	}
}

// MergeText joins runs of consecutive Text events into a single event
// whose range spans the run. Other events pass through unchanged.
func MergeText(events []Event) []Event {
	if len(events) < 2 {
		return events
	}

	merged := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.Kind == KindText && len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.Kind == KindText {
				last.Text += ev.Text
				last.Range = last.Range.Union(ev.Range)
				continue
			}
		}
		merged = append(merged, ev)
	}
	return merged
}
