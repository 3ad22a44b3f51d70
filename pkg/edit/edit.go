// Package edit applies byte-range replacements to source text and shows
// the result as a unified diff.
package edit

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/basalt/pkg/mdast"
)

var (
	// ErrOutOfRange indicates an edit outside the content it applies to.
	ErrOutOfRange = errors.New("edit out of range")

	// ErrOverlap indicates two edits touching the same bytes.
	ErrOverlap = errors.New("overlapping edits")
)

// Edit replaces the bytes in Range with Text. An empty range inserts.
type Edit struct {
	Range mdast.SourceRange
	Text  string
}

// Replace returns an edit replacing rng with text.
func Replace(rng mdast.SourceRange, text string) Edit {
	return Edit{Range: rng, Text: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) Edit {
	return Edit{Range: mdast.Range(offset, offset), Text: text}
}

func (e Edit) String() string {
	return fmt.Sprintf("%s -> %q", e.Range, e.Text)
}

// Apply returns a copy of content with every edit applied. Edits may be
// given in any order. Content is never modified; on error nothing is
// applied.
func Apply(content []byte, edits ...Edit) ([]byte, error) {
	sorted, err := prepare(edits, len(content))
	if err != nil {
		return nil, err
	}

	grow := 0
	for _, e := range sorted {
		grow += len(e.Text) - e.Range.Len()
	}

	var out bytes.Buffer
	out.Grow(len(content) + max(0, grow))

	cursor := 0
	for _, e := range sorted {
		out.Write(content[cursor:e.Range.Start])
		out.WriteString(e.Text)
		cursor = e.Range.End
	}
	out.Write(content[cursor:])
	return out.Bytes(), nil
}

// prepare validates edits against a content length and sorts them by
// position. Two insertions at the same offset keep their given order.
func prepare(edits []Edit, size int) ([]Edit, error) {
	for _, e := range edits {
		if e.Range.Start < 0 || e.Range.End < e.Range.Start || e.Range.End > size {
			return nil, fmt.Errorf("%w: %s in %d bytes", ErrOutOfRange, e.Range, size)
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		if a.Range.Start != b.Range.Start {
			return a.Range.Start - b.Range.Start
		}
		return a.Range.End - b.Range.End
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1].Range, sorted[i].Range
		if cur.Start < prev.End || (cur.Start == prev.Start && prev.Len() > 0) {
			return nil, fmt.Errorf("%w: %s and %s", ErrOverlap, prev, cur)
		}
	}
	return sorted, nil
}
