// Package mdast defines the Markdown AST produced by the tree builder.
//
// A document is an ordered slice of Node values. Each Node pairs a
// MarkdownNode variant with the byte range of source text it covers.
// Containers (BlockQuote, List) hold child Nodes; every other variant
// holds only Text.
package mdast

// NodeKind classifies a MarkdownNode variant.
type NodeKind uint8

// Node kinds, one per MarkdownNode variant.
const (
	NodeHeading NodeKind = iota
	NodeParagraph
	NodeBlockQuote
	NodeCodeBlock
	NodeList
	NodeItem
	NodeTaskListItem
)

var nodeKindNames = [...]string{
	NodeHeading:      "Heading",
	NodeParagraph:    "Paragraph",
	NodeBlockQuote:   "BlockQuote",
	NodeCodeBlock:    "CodeBlock",
	NodeList:         "List",
	NodeItem:         "Item",
	NodeTaskListItem: "TaskListItem",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// IsContainer returns true for kinds that hold child nodes.
func (k NodeKind) IsContainer() bool {
	return k == NodeBlockQuote || k == NodeList
}

// MarkdownNode is the closed set of node variants. The unexported marker
// method keeps other packages from adding variants.
type MarkdownNode interface {
	NodeKind() NodeKind
	markdownNode()
}

// Node pairs a variant with the source range it was built from.
type Node struct {
	MarkdownNode MarkdownNode
	SourceRange  SourceRange
}

// NewNode wraps a variant with its range.
func NewNode(node MarkdownNode, r SourceRange) Node {
	return Node{MarkdownNode: node, SourceRange: r}
}

// Kind returns the kind of the wrapped variant.
func (n Node) Kind() NodeKind {
	return n.MarkdownNode.NodeKind()
}

// Children returns the child nodes of a container, or nil for leaves.
func (n Node) Children() []Node {
	switch v := n.MarkdownNode.(type) {
	case *BlockQuote:
		return v.Nodes
	case *List:
		return v.Nodes
	default:
		return nil
	}
}

// Text returns the text of a leaf node, or nil for containers.
func (n Node) Text() Text {
	switch v := n.MarkdownNode.(type) {
	case *Heading:
		return v.Text
	case *Paragraph:
		return v.Text
	case *CodeBlock:
		return v.Text
	case *Item:
		return v.Text
	case *TaskListItem:
		return v.Text
	default:
		return nil
	}
}

// PushText appends a run to the innermost open leaf. Leaves take the run
// directly; containers hand it to their last child. A container with no
// children drops the run.
func (n Node) PushText(run TextNode) {
	switch v := n.MarkdownNode.(type) {
	case *Heading:
		v.Text.Push(run)
	case *Paragraph:
		v.Text.Push(run)
	case *CodeBlock:
		v.Text.Push(run)
	case *Item:
		v.Text.Push(run)
	case *TaskListItem:
		v.Text.Push(run)
	case *BlockQuote:
		if len(v.Nodes) > 0 {
			v.Nodes[len(v.Nodes)-1].PushText(run)
		}
	case *List:
		if len(v.Nodes) > 0 {
			v.Nodes[len(v.Nodes)-1].PushText(run)
		}
	}
}

// Heading is an ATX or setext heading.
type Heading struct {
	Level HeadingLevel
	Text  Text
}

// Paragraph is a block of running text.
type Paragraph struct {
	Text Text
}

// BlockQuote is a quote, optionally an Obsidian/GFM callout.
type BlockQuote struct {
	Kind  CalloutKind
	Nodes []Node
}

// CodeBlock is a fenced or indented code block. Lang is empty when the
// fence carries no info string.
type CodeBlock struct {
	Lang string
	Text Text
}

// List is an ordered or unordered list.
type List struct {
	Kind  ListKind
	Nodes []Node
}

// Item is a plain list item.
type Item struct {
	Text Text
}

// TaskListItem is a list item carrying a checkbox.
type TaskListItem struct {
	Kind TaskListItemKind
	Text Text
}

func (*Heading) NodeKind() NodeKind      { return NodeHeading }
func (*Paragraph) NodeKind() NodeKind    { return NodeParagraph }
func (*BlockQuote) NodeKind() NodeKind   { return NodeBlockQuote }
func (*CodeBlock) NodeKind() NodeKind    { return NodeCodeBlock }
func (*List) NodeKind() NodeKind         { return NodeList }
func (*Item) NodeKind() NodeKind         { return NodeItem }
func (*TaskListItem) NodeKind() NodeKind { return NodeTaskListItem }

func (*Heading) markdownNode()      {}
func (*Paragraph) markdownNode()    {}
func (*BlockQuote) markdownNode()   {}
func (*CodeBlock) markdownNode()    {}
func (*List) markdownNode()         {}
func (*Item) markdownNode()         {}
func (*TaskListItem) markdownNode() {}
