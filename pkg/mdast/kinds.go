package mdast

import (
	"fmt"
	"strings"
)

// HeadingLevel is the level of a heading, H1 through H6.
type HeadingLevel uint8

// Heading levels.
const (
	H1 HeadingLevel = iota + 1
	H2
	H3
	H4
	H5
	H6
)

// HeadingLevelOf clamps n into H1..H6.
func HeadingLevelOf(n int) HeadingLevel {
	switch {
	case n < int(H1):
		return H1
	case n > int(H6):
		return H6
	default:
		return HeadingLevel(n)
	}
}

func (l HeadingLevel) String() string {
	return fmt.Sprintf("H%d", l)
}

// CalloutKind is the callout subtype of a block quote. CalloutNone marks a
// plain quote.
type CalloutKind uint8

// Callout kinds.
const (
	CalloutNone CalloutKind = iota
	CalloutNote
	CalloutTip
	CalloutImportant
	CalloutWarning
	CalloutCaution
)

var calloutNames = [...]string{
	CalloutNone:      "",
	CalloutNote:      "note",
	CalloutTip:       "tip",
	CalloutImportant: "important",
	CalloutWarning:   "warning",
	CalloutCaution:   "caution",
}

func (k CalloutKind) String() string {
	if int(k) < len(calloutNames) {
		return calloutNames[k]
	}
	return ""
}

// ParseCalloutKind maps a callout name (any case) to its kind.
func ParseCalloutKind(name string) (CalloutKind, bool) {
	name = strings.ToLower(name)
	for kind, known := range calloutNames {
		if known != "" && known == name {
			return CalloutKind(kind), true
		}
	}
	return CalloutNone, false
}

// ListKind describes whether a list is ordered and where numbering starts.
type ListKind struct {
	Ordered bool
	Start   uint64
}

// Ordered returns the kind of an ordered list starting at start.
func Ordered(start uint64) ListKind {
	return ListKind{Ordered: true, Start: start}
}

// Unordered returns the kind of a bullet list.
func Unordered() ListKind {
	return ListKind{}
}

// ItemNumber returns the display number of the sibling at index i.
// Numbering follows sibling position only, never the numbers written in
// the source beyond the start value.
func (k ListKind) ItemNumber(i int) uint64 {
	return k.Start + uint64(i)
}

func (k ListKind) String() string {
	if k.Ordered {
		return fmt.Sprintf("ordered(%d)", k.Start)
	}
	return "unordered"
}

// TaskListItemKind is the checkbox state of a task item.
type TaskListItemKind uint8

// Task states.
const (
	TaskUnchecked TaskListItemKind = iota
	TaskChecked
)

// TaskKindOf returns the kind for a checkbox state.
func TaskKindOf(checked bool) TaskListItemKind {
	if checked {
		return TaskChecked
	}
	return TaskUnchecked
}

func (k TaskListItemKind) String() string {
	if k == TaskChecked {
		return "checked"
	}
	return "unchecked"
}
