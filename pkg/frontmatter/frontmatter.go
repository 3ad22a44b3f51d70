// Package frontmatter splits a leading YAML metadata block off a Markdown
// document and decodes it.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/basalt/pkg/mdast"
)

// Block is a front matter block found at the top of a document.
type Block struct {
	// Raw is the YAML between the delimiter lines.
	Raw []byte

	// Range spans the whole block, delimiters included.
	Range mdast.SourceRange

	// Content spans Raw.
	Content mdast.SourceRange
}

// BodyOffset is the byte offset where the Markdown body starts.
func (b Block) BodyOffset() int {
	return b.Range.End
}

// Split looks for a block opened by a `---` line at offset 0 and closed by
// a `---` or `...` line. A `---` followed by a blank line is a thematic
// break, not front matter.
func Split(source []byte) (Block, bool) {
	lines := mdast.BuildLines(source)
	if len(lines) < 3 || !isDelimiter(lineText(source, lines[0]), false) {
		return Block{}, false
	}
	if len(bytes.TrimSpace(lineText(source, lines[1]))) == 0 {
		return Block{}, false
	}

	for i := 1; i < len(lines); i++ {
		if !isDelimiter(lineText(source, lines[i]), true) {
			continue
		}
		content := mdast.Range(lines[1].StartOffset, lines[i].StartOffset)
		return Block{
			Raw:     source[content.Start:content.End],
			Range:   mdast.Range(0, lines[i].EndOffset),
			Content: content,
		}, true
	}

	return Block{}, false
}

// Decode unmarshals the block's YAML into a map. An empty block decodes
// to an empty map.
func Decode(block Block) (map[string]any, error) {
	meta := make(map[string]any)
	if len(bytes.TrimSpace(block.Raw)) == 0 {
		return meta, nil
	}
	if err := yaml.Unmarshal(block.Raw, &meta); err != nil {
		return nil, fmt.Errorf("decode front matter: %w", err)
	}
	return meta, nil
}

func lineText(source []byte, line mdast.LineInfo) []byte {
	return source[line.StartOffset:line.NewlineStart]
}

func isDelimiter(line []byte, closing bool) bool {
	line = bytes.TrimRight(line, " \t")
	if bytes.Equal(line, []byte("---")) {
		return true
	}
	return closing && bytes.Equal(line, []byte("..."))
}
