package event

import (
	"fmt"
	"strconv"
	"strings"
)

// TagKind classifies the construct a Start/End pair delimits.
type TagKind uint8

// Tag kinds. Block tags come first, then inline tags.
const (
	TagParagraph TagKind = iota
	TagHeading
	TagBlockQuote
	TagCodeBlock
	TagHTMLBlock
	TagList
	TagItem
	TagFootnoteDefinition
	TagTable
	TagTableHead
	TagTableRow
	TagTableCell
	TagMetadataBlock
	TagDefinitionList

	TagEmphasis
	TagStrong
	TagStrikethrough
	TagLink
	TagImage
)

var tagKindNames = [...]string{
	TagParagraph:          "Paragraph",
	TagHeading:            "Heading",
	TagBlockQuote:         "BlockQuote",
	TagCodeBlock:          "CodeBlock",
	TagHTMLBlock:          "HtmlBlock",
	TagList:               "List",
	TagItem:               "Item",
	TagFootnoteDefinition: "FootnoteDefinition",
	TagTable:              "Table",
	TagTableHead:          "TableHead",
	TagTableRow:           "TableRow",
	TagTableCell:          "TableCell",
	TagMetadataBlock:      "MetadataBlock",
	TagDefinitionList:     "DefinitionList",
	TagEmphasis:           "Emphasis",
	TagStrong:             "Strong",
	TagStrikethrough:      "Strikethrough",
	TagLink:               "Link",
	TagImage:              "Image",
}

func (k TagKind) String() string {
	if int(k) < len(tagKindNames) {
		return tagKindNames[k]
	}
	return "TagKind(" + strconv.Itoa(int(k)) + ")"
}

// IsBlock reports whether the tag delimits a block construct.
func (k TagKind) IsBlock() bool {
	return k < TagEmphasis
}

// Callout is the callout payload of a block quote tag.
type Callout uint8

// Callouts recognized on block quotes.
const (
	CalloutNone Callout = iota
	CalloutNote
	CalloutTip
	CalloutImportant
	CalloutWarning
	CalloutCaution
)

var calloutNames = [...]string{"", "note", "tip", "important", "warning", "caution"}

func (c Callout) String() string {
	if int(c) < len(calloutNames) {
		return calloutNames[c]
	}
	return ""
}

// ParseCallout maps a callout name (any case) to its value.
func ParseCallout(name string) (Callout, bool) {
	name = strings.ToLower(name)
	for i, known := range calloutNames {
		if i > 0 && known == name {
			return Callout(i), true
		}
	}
	return CalloutNone, false
}

// Tag is the payload of Start and End events. Only the fields relevant to
// Kind are set.
type Tag struct {
	Kind TagKind

	// Level is the heading level, 1 to 6.
	Level int

	// Callout is the block quote subtype.
	Callout Callout

	// Ordered and ListStart describe a list.
	Ordered   bool
	ListStart uint64

	// Fenced and Info describe a code block; Info is the raw info string.
	Fenced bool
	Info   string

	// Destination is the URL of a link or image.
	Destination string
}

// Paragraph returns a paragraph tag.
func Paragraph() Tag { return Tag{Kind: TagParagraph} }

// Heading returns a heading tag of the given level.
func Heading(level int) Tag { return Tag{Kind: TagHeading, Level: level} }

// BlockQuote returns a block quote tag with an optional callout.
func BlockQuote(callout Callout) Tag { return Tag{Kind: TagBlockQuote, Callout: callout} }

// FencedCodeBlock returns a fenced code block tag.
func FencedCodeBlock(info string) Tag { return Tag{Kind: TagCodeBlock, Fenced: true, Info: info} }

// IndentedCodeBlock returns an indented code block tag.
func IndentedCodeBlock() Tag { return Tag{Kind: TagCodeBlock} }

// OrderedList returns an ordered list tag starting at start.
func OrderedList(start uint64) Tag { return Tag{Kind: TagList, Ordered: true, ListStart: start} }

// UnorderedList returns a bullet list tag.
func UnorderedList() Tag { return Tag{Kind: TagList} }

// Item returns a list item tag.
func Item() Tag { return Tag{Kind: TagItem} }

// Simple returns a payload-free tag of the given kind.
func Simple(kind TagKind) Tag { return Tag{Kind: kind} }

func (t Tag) String() string {
	switch t.Kind {
	case TagHeading:
		return fmt.Sprintf("Heading(H%d)", t.Level)
	case TagBlockQuote:
		if t.Callout != CalloutNone {
			return fmt.Sprintf("BlockQuote(%s)", t.Callout)
		}
	case TagCodeBlock:
		if t.Fenced {
			return fmt.Sprintf("CodeBlock(fenced %q)", t.Info)
		}
		return "CodeBlock(indented)"
	case TagList:
		if t.Ordered {
			return fmt.Sprintf("List(%d)", t.ListStart)
		}
	case TagLink, TagImage:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Destination)
	}
	return t.Kind.String()
}
