package mdast

import "sort"

// LineInfo holds the offsets of a single source line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a last line without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// BuildLines constructs line metadata from content.
// It handles both LF (\n) and CRLF (\r\n) line endings.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// The last line may not have a trailing newline.
	lines = append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})

	return lines
}

// Source is the text a document was parsed from, with a line index for
// converting between byte offsets and line/column positions.
type Source struct {
	Content []byte
	Lines   []LineInfo
}

// NewSource indexes content.
func NewSource(content []byte) *Source {
	return &Source{
		Content: content,
		Lines:   BuildLines(content),
	}
}

// LineCount returns the number of lines.
func (s *Source) LineCount() int {
	return len(s.Lines)
}

// LineIndex returns the 0-based index of the line containing offset.
// Offsets past the end map to the last line; -1 means there are no lines.
func (s *Source) LineIndex(offset int) int {
	if len(s.Lines) == 0 {
		return -1
	}

	idx := sort.Search(len(s.Lines), func(i int) bool {
		return s.Lines[i].EndOffset > offset
	})
	if idx >= len(s.Lines) {
		idx = len(s.Lines) - 1
	}
	return idx
}

// LineAt converts a byte offset to a 1-based line and column.
// Column counts bytes, not runes. It returns the zero Position when the
// offset is out of range.
func (s *Source) LineAt(offset int) Position {
	if offset < 0 || offset > len(s.Content) || len(s.Lines) == 0 {
		return Position{}
	}

	idx := s.LineIndex(offset)
	return Position{Line: idx + 1, Column: offset - s.Lines[idx].StartOffset + 1}
}

// Offset converts a 1-based line and column to a byte offset.
// Returns (offset, true) on success, or (0, false) if out of range.
func (s *Source) Offset(pos Position) (int, bool) {
	if pos.Line < 1 || pos.Line > len(s.Lines) || pos.Column < 1 {
		return 0, false
	}

	line := s.Lines[pos.Line-1]
	offset := line.StartOffset + pos.Column - 1

	// A column may point just past the line for cursor positioning.
	if offset > line.EndOffset {
		return 0, false
	}

	return offset, true
}

// LineContent returns the content of a 1-based line number, excluding the newline.
// Returns nil if the line number is out of range.
func (s *Source) LineContent(line int) []byte {
	if line < 1 || line > len(s.Lines) {
		return nil
	}

	info := s.Lines[line-1]
	return s.Content[info.StartOffset:info.NewlineStart]
}

// Slice returns the bytes covered by r, clamped to the content.
func (s *Source) Slice(r SourceRange) []byte {
	start := max(0, min(r.Start, len(s.Content)))
	end := max(start, min(r.End, len(s.Content)))
	return s.Content[start:end]
}
