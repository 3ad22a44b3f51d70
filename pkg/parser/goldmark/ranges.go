package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/basalt/pkg/mdast"
)

// resolver assigns line-based source ranges to goldmark block nodes.
//
// goldmark records content segments, not the markers around them, so a
// block's range is rebuilt from its lines: it starts at its marker (or its
// first content byte) and ends after the newline of its last line.
// Containers span their children. Blocks without segments (thematic
// breaks, empty headings, empty items) take the first non-blank line after
// the previous block.
type resolver struct {
	src    *mdast.Source
	ranges map[ast.Node]mdast.SourceRange
	cursor int
}

func newResolver(src *mdast.Source) *resolver {
	return &resolver{
		src:    src,
		ranges: make(map[ast.Node]mdast.SourceRange),
	}
}

// resolveChildren resolves every block child of parent in document order.
func (r *resolver) resolveChildren(parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == ast.TypeBlock {
			r.resolve(child)
		}
	}
}

func (r *resolver) resolve(node ast.Node) mdast.SourceRange {
	var rng mdast.SourceRange

	switch n := node.(type) {
	case *ast.Blockquote:
		rng = r.container(n, r.quoteStart)
	case *ast.ListItem:
		rng = r.container(n, r.itemStart)
	case *ast.Heading:
		rng = r.heading(n)
	case *ast.FencedCodeBlock:
		rng = r.fencedCode(n)
	case *ast.HTMLBlock:
		rng = r.htmlBlock(n)
	default:
		if hasBlockChild(node) {
			rng = r.container(node, nil)
		} else {
			rng = r.leaf(node)
		}
	}

	r.ranges[node] = rng
	r.cursor = max(r.cursor, rng.End)
	return rng
}

// rangeOf returns the resolved range of node, or an empty range at the
// cursor for nodes that were never resolved.
func (r *resolver) rangeOf(node ast.Node) mdast.SourceRange {
	if rng, ok := r.ranges[node]; ok {
		return rng
	}
	return mdast.Range(r.cursor, r.cursor)
}

func (r *resolver) container(node ast.Node, startOf func(int) int) mdast.SourceRange {
	var first, last mdast.SourceRange
	found := false
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() != ast.TypeBlock {
			continue
		}
		rng := r.resolve(child)
		if !found {
			first, found = rng, true
		}
		last = rng
	}
	if !found {
		return r.fallback()
	}

	start := first.Start
	if startOf != nil {
		start = startOf(first.Start)
	}
	return mdast.Range(start, max(start, last.End))
}

func (r *resolver) leaf(node ast.Node) mdast.SourceRange {
	lines := node.Lines()
	if lines.Len() == 0 {
		if span, ok := textSpan(node); ok {
			return mdast.Range(span.Start, r.lineEnd(span.End))
		}
		if _, ok := node.(*ast.ThematicBreak); ok {
			return r.fallback()
		}
		return mdast.Range(r.cursor, r.cursor)
	}

	first, last := lines.At(0), lines.At(lines.Len()-1)
	return mdast.Range(first.Start, r.lineEnd(last.Start))
}

func (r *resolver) heading(node *ast.Heading) mdast.SourceRange {
	lines := node.Lines()
	if lines.Len() == 0 {
		return r.fallback()
	}

	first, last := lines.At(0), lines.At(lines.Len()-1)

	// ATX: the content is preceded by the run of '#' on the same line.
	if i := r.skipSpaceBack(first.Start - 1); i >= 0 && r.src.Content[i] == '#' {
		for i > 0 && r.src.Content[i-1] == '#' {
			i--
		}
		return mdast.Range(i, r.lineEnd(first.Start))
	}

	// Setext: the underline is the line after the content.
	underline := min(r.src.LineIndex(last.Start)+1, len(r.src.Lines)-1)
	return mdast.Range(first.Start, r.src.Lines[underline].EndOffset)
}

func (r *resolver) fencedCode(node *ast.FencedCodeBlock) mdast.SourceRange {
	lines := node.Lines()

	var open int
	switch {
	case node.Info != nil:
		open = r.src.LineIndex(node.Info.Segment.Start)
	case lines.Len() > 0:
		open = max(0, r.src.LineIndex(lines.At(0).Start)-1)
	default:
		fb := r.fallback()
		open = r.src.LineIndex(fb.Start)
	}

	openLine := r.src.Lines[open]
	start := openLine.StartOffset
	if i := bytes.IndexAny(r.src.Content[openLine.StartOffset:openLine.NewlineStart], "`~"); i >= 0 {
		start += i
	}

	lastContent := open
	if lines.Len() > 0 {
		lastContent = r.src.LineIndex(lines.At(lines.Len() - 1).Start)
	}

	end := r.src.Lines[lastContent].EndOffset
	if closing := lastContent + 1; closing < len(r.src.Lines) && start < len(r.src.Content) {
		line := r.src.Lines[closing]
		if isClosingFence(r.src.Content[line.StartOffset:line.NewlineStart], r.src.Content[start]) {
			end = line.EndOffset
		}
	}

	return mdast.Range(start, end)
}

func (r *resolver) htmlBlock(node *ast.HTMLBlock) mdast.SourceRange {
	lines := node.Lines()
	if lines.Len() == 0 {
		return r.fallback()
	}

	last := lines.At(lines.Len() - 1)
	if node.HasClosure() {
		last = node.ClosureLine
	}
	return mdast.Range(lines.At(0).Start, r.lineEnd(last.Start))
}

// quoteStart moves a child's start back to the '>' that opens its line.
func (r *resolver) quoteStart(childStart int) int {
	if i := r.skipSpaceBack(childStart - 1); i >= 0 && r.src.Content[i] == '>' {
		return i
	}
	return childStart
}

// itemStart moves a child's start back to the bullet or number of its item.
func (r *resolver) itemStart(childStart int) int {
	i := r.skipSpaceBack(childStart - 1)
	if i < 0 {
		return childStart
	}

	switch c := r.src.Content[i]; c {
	case '-', '+', '*':
		return i
	case '.', ')':
		j := i
		for j > 0 && isDigit(r.src.Content[j-1]) {
			j--
		}
		if j < i {
			return j
		}
	}
	return childStart
}

// fallback places a block without segments on the first non-blank line at
// or after the cursor.
func (r *resolver) fallback() mdast.SourceRange {
	content := r.src.Content
	if r.cursor >= len(content) {
		return mdast.Range(len(content), len(content))
	}

	for idx := r.src.LineIndex(r.cursor); idx < len(r.src.Lines); idx++ {
		line := r.src.Lines[idx]
		text := content[line.StartOffset:line.NewlineStart]
		trimmed := bytes.TrimLeft(text, " \t")
		if len(trimmed) == 0 {
			continue
		}
		start := line.StartOffset + len(text) - len(trimmed)
		return mdast.Range(max(start, r.cursor), line.EndOffset)
	}

	return mdast.Range(r.cursor, len(content))
}

func (r *resolver) lineEnd(offset int) int {
	idx := r.src.LineIndex(offset)
	if idx < 0 {
		return offset
	}
	return r.src.Lines[idx].EndOffset
}

// skipSpaceBack returns the index of the last non-blank byte at or before
// i on the same line, or -1.
func (r *resolver) skipSpaceBack(i int) int {
	for i >= 0 {
		switch r.src.Content[i] {
		case ' ', '\t':
			i--
		case '\n':
			return -1
		default:
			return i
		}
	}
	return -1
}

// textSpan returns the byte span covered by the text descendants of node.
func textSpan(node ast.Node) (mdast.SourceRange, bool) {
	span := mdast.Range(-1, -1)

	//nolint:errcheck // the walker never fails
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			seg := mdast.Range(t.Segment.Start, t.Segment.Stop)
			if span.Start < 0 {
				span = seg
			} else {
				span = span.Union(seg)
			}
		}
		return ast.WalkContinue, nil
	})

	return span, span.Start >= 0
}

func hasBlockChild(node ast.Node) bool {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if child.Type() == ast.TypeBlock {
			return true
		}
	}
	return false
}

// isClosingFence reports whether line, once container markers and
// indentation are stripped, is a run of at least three fence characters.
func isClosingFence(line []byte, fence byte) bool {
	line = bytes.TrimLeft(line, " \t>")
	n := 0
	for n < len(line) && line[n] == fence {
		n++
	}
	return n >= 3 && len(bytes.TrimSpace(line[n:])) == 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
