package goldmark

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/yaklabco/basalt/pkg/event"
	"github.com/yaklabco/basalt/pkg/mdast"
)

// calloutPattern matches the first line of a callout quote, e.g. `[!NOTE]`.
var calloutPattern = regexp.MustCompile(`^\[!([A-Za-z]+)\]$`)

// emitter walks a goldmark document and appends events in document order.
// All ranges are shifted by base so they index the original source.
type emitter struct {
	src      *mdast.Source
	base     int
	callouts bool
	ranges   *resolver
	events   []event.Event

	// skipBefore drops inline nodes that start before this offset; it
	// hides the marker line of a callout.
	skipBefore int
}

func newEmitter(body []byte, base int, callouts bool) *emitter {
	src := mdast.NewSource(body)
	return &emitter{
		src:      src,
		base:     base,
		callouts: callouts,
		ranges:   newResolver(src),
	}
}

func (e *emitter) document(doc ast.Node) {
	e.ranges.resolveChildren(doc)
	e.blocks(doc)
}

func (e *emitter) push(ev event.Event) {
	ev.Range = ev.Range.Shift(e.base)
	e.events = append(e.events, ev)
}

func (e *emitter) blocks(parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		e.block(child)
	}
}

func (e *emitter) block(node ast.Node) {
	rng := e.ranges.rangeOf(node)

	switch n := node.(type) {
	case *ast.Heading:
		e.wrap(event.Heading(n.Level), rng, func() { e.inlines(n) })

	case *ast.Paragraph:
		e.wrap(event.Paragraph(), rng, func() { e.inlines(n) })

	case *ast.TextBlock:
		// Tight list items carry their text without a paragraph.
		e.inlines(n)

	case *ast.Blockquote:
		e.blockquote(n, rng)

	case *ast.List:
		tag := event.UnorderedList()
		if n.IsOrdered() {
			tag = event.OrderedList(uint64(max(0, n.Start)))
		}
		e.wrap(tag, rng, func() { e.blocks(n) })

	case *ast.ListItem:
		e.wrap(event.Item(), rng, func() {
			e.taskMarker(n)
			e.blocks(n)
		})

	case *ast.FencedCodeBlock:
		info := ""
		if n.Info != nil {
			info = string(n.Info.Segment.Value(e.src.Content))
		}
		e.wrap(event.FencedCodeBlock(info), rng, func() { e.codeText(n) })

	case *ast.CodeBlock:
		e.wrap(event.IndentedCodeBlock(), rng, func() { e.codeText(n) })

	case *ast.HTMLBlock:
		e.wrap(event.Simple(event.TagHTMLBlock), rng, func() { e.htmlLines(n) })

	case *ast.ThematicBreak:
		e.push(event.Atom(event.KindRule, rng))

	case *east.Table:
		e.wrap(event.Simple(event.TagTable), rng, func() { e.blocks(n) })

	case *east.TableHeader:
		e.wrap(event.Simple(event.TagTableHead), rng, func() { e.blocks(n) })

	case *east.TableRow:
		e.wrap(event.Simple(event.TagTableRow), rng, func() { e.blocks(n) })

	case *east.TableCell:
		e.wrap(event.Simple(event.TagTableCell), rng, func() { e.inlines(n) })

	default:
		if hasBlockChild(n) {
			e.blocks(n)
		} else {
			e.inlines(n)
		}
	}
}

func (e *emitter) wrap(tag event.Tag, rng mdast.SourceRange, body func()) {
	e.push(event.Start(tag, rng))
	body()
	e.push(event.End(tag, rng))
}

func (e *emitter) blockquote(quote *ast.Blockquote, rng mdast.SourceRange) {
	kind, marker := e.callout(quote)

	e.wrap(event.BlockQuote(kind), rng, func() {
		for child := quote.FirstChild(); child != nil; child = child.NextSibling() {
			if child == marker {
				e.calloutBody(marker)
				continue
			}
			e.block(child)
		}
	})
}

// callout returns the callout kind of a quote and the paragraph holding its
// marker line, or CalloutNone and nil.
func (e *emitter) callout(quote *ast.Blockquote) (event.Callout, *ast.Paragraph) {
	if !e.callouts {
		return event.CalloutNone, nil
	}

	para, ok := quote.FirstChild().(*ast.Paragraph)
	if !ok || para.Lines().Len() == 0 {
		return event.CalloutNone, nil
	}

	first := para.Lines().At(0)
	line := bytes.TrimSpace(first.Value(e.src.Content))
	match := calloutPattern.FindSubmatch(line)
	if match == nil {
		return event.CalloutNone, nil
	}

	kind, ok := event.ParseCallout(string(match[1]))
	if !ok {
		return event.CalloutNone, nil
	}
	return kind, para
}

// calloutBody emits the paragraph that opens a callout without its marker
// line. A paragraph holding only the marker emits nothing.
func (e *emitter) calloutBody(para *ast.Paragraph) {
	lines := para.Lines()
	if lines.Len() < 2 {
		return
	}

	second := lines.At(1).Start
	rng := e.ranges.rangeOf(para)
	rng.Start = second

	e.skipBefore = second
	e.wrap(event.Paragraph(), rng, func() { e.inlines(para) })
	e.skipBefore = 0
}

// taskMarker hoists a GFM checkbox to directly after the item's start.
func (e *emitter) taskMarker(item *ast.ListItem) {
	first := item.FirstChild()
	if first == nil {
		return
	}

	box, ok := first.FirstChild().(*east.TaskCheckBox)
	if !ok {
		return
	}

	start := e.ranges.rangeOf(first).Start
	e.push(event.TaskMarker(box.IsChecked, mdast.Range(start, min(start+3, e.ranges.rangeOf(first).End))))
}

func (e *emitter) codeText(node ast.Node) {
	lines := node.Lines()
	if lines.Len() == 0 {
		return
	}

	var buf bytes.Buffer
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(e.src.Content))
	}

	first, last := lines.At(0), lines.At(lines.Len()-1)
	e.push(event.Text(buf.String(), mdast.Range(first.Start, last.Stop)))
}

func (e *emitter) htmlLines(block *ast.HTMLBlock) {
	lines := block.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		e.push(event.Raw(event.KindHTML, string(seg.Value(e.src.Content)), mdast.Range(seg.Start, seg.Stop)))
	}
	if block.HasClosure() {
		seg := block.ClosureLine
		e.push(event.Raw(event.KindHTML, string(seg.Value(e.src.Content)), mdast.Range(seg.Start, seg.Stop)))
	}
}

func (e *emitter) inlines(parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		e.inline(child)
	}
}

func (e *emitter) inline(node ast.Node) {
	if e.skipBefore > 0 {
		if span, ok := textSpan(node); ok && span.Start < e.skipBefore {
			return
		}
	}

	switch n := node.(type) {
	case *ast.Text:
		e.text(n)

	case *ast.String:
		at := e.lastEnd()
		e.push(event.Text(string(n.Value), mdast.Range(at, at)))

	case *ast.CodeSpan:
		e.codeSpan(n)

	case *ast.Emphasis:
		kind := event.TagEmphasis
		if n.Level >= 2 {
			kind = event.TagStrong
		}
		e.inlineWrap(event.Simple(kind), n)

	case *east.Strikethrough:
		e.inlineWrap(event.Simple(event.TagStrikethrough), n)

	case *ast.Link:
		e.inlineWrap(event.Tag{Kind: event.TagLink, Destination: string(n.Destination)}, n)

	case *ast.Image:
		e.inlineWrap(event.Tag{Kind: event.TagImage, Destination: string(n.Destination)}, n)

	case *ast.AutoLink:
		tag := event.Tag{Kind: event.TagLink, Destination: string(n.URL(e.src.Content))}
		at := e.lastEnd()
		rng := mdast.Range(at, at)
		e.push(event.Start(tag, rng))
		e.push(event.Text(string(n.Label(e.src.Content)), rng))
		e.push(event.End(tag, rng))

	case *ast.RawHTML:
		e.rawHTML(n)

	case *east.TaskCheckBox:
		// Hoisted by taskMarker.

	default:
		e.inlines(n)
	}
}

func (e *emitter) inlineWrap(tag event.Tag, node ast.Node) {
	rng, ok := textSpan(node)
	if !ok {
		at := e.lastEnd()
		rng = mdast.Range(at, at)
	}
	e.push(event.Start(tag, rng))
	e.inlines(node)
	e.push(event.End(tag, rng))
}

func (e *emitter) text(n *ast.Text) {
	seg := n.Segment
	value := seg.Value(e.src.Content)
	if n.SoftLineBreak() || n.HardLineBreak() {
		value = bytes.TrimRight(value, "\r\n")
	}
	if !n.IsRaw() {
		value = unescape(value)
	}

	if len(value) > 0 {
		e.push(event.Text(string(value), mdast.Range(seg.Start, seg.Stop)))
	}

	brk := mdast.Range(seg.Stop, e.ranges.lineEnd(seg.Stop))
	switch {
	case n.HardLineBreak():
		e.push(event.Atom(event.KindHardBreak, brk))
	case n.SoftLineBreak():
		e.push(event.Atom(event.KindSoftBreak, brk))
	}
}

func (e *emitter) codeSpan(n *ast.CodeSpan) {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch c := child.(type) {
		case *ast.Text:
			sb.Write(c.Segment.Value(e.src.Content))
		case *ast.String:
			sb.Write(c.Value)
		}
	}

	rng, ok := textSpan(n)
	if !ok {
		at := e.lastEnd()
		rng = mdast.Range(at, at)
	}
	e.push(event.Code(strings.ReplaceAll(sb.String(), "\n", " "), rng))
}

func (e *emitter) rawHTML(n *ast.RawHTML) {
	var sb strings.Builder
	rng := mdast.Range(-1, -1)
	for i := range n.Segments.Len() {
		seg := n.Segments.At(i)
		sb.Write(seg.Value(e.src.Content))
		if rng.Start < 0 {
			rng = mdast.Range(seg.Start, seg.Stop)
		} else {
			rng = rng.Union(mdast.Range(seg.Start, seg.Stop))
		}
	}
	if rng.Start < 0 {
		at := e.lastEnd()
		rng = mdast.Range(at, at)
	}
	e.push(event.Raw(event.KindInlineHTML, sb.String(), rng))
}

// lastEnd is the body offset where the previous event ended.
func (e *emitter) lastEnd() int {
	if len(e.events) == 0 {
		return 0
	}
	return e.events[len(e.events)-1].Range.End - e.base
}

// unescape resolves backslash escapes and character references the way
// goldmark's HTML writer does.
func unescape(value []byte) []byte {
	if bytes.IndexByte(value, '\\') < 0 && bytes.IndexByte(value, '&') < 0 {
		return value
	}
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}
