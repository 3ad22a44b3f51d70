package mdast

import "fmt"

// SourceRange is a half-open byte range [Start, End) into the source text.
type SourceRange struct {
	// Start is the byte index where the range begins (inclusive).
	Start int

	// End is the byte index where the range ends (exclusive).
	End int
}

// Range returns a SourceRange covering [start, end).
func Range(start, end int) SourceRange {
	return SourceRange{Start: start, End: end}
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.End - r.Start
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.Start == r.End
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.Start && offset < r.End
}

// ContainsRange returns true if other lies entirely within r.
func (r SourceRange) ContainsRange(other SourceRange) bool {
	return other.Start >= r.Start && other.End <= r.End
}

// Union returns the smallest range covering both r and other.
func (r SourceRange) Union(other SourceRange) SourceRange {
	return SourceRange{Start: min(r.Start, other.Start), End: max(r.End, other.End)}
}

// Shift returns the range moved by delta bytes.
func (r SourceRange) Shift(delta int) SourceRange {
	return SourceRange{Start: r.Start + delta, End: r.End + delta}
}

func (r SourceRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

// Position is a 1-based line and column (in bytes) in the source text.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has valid (positive) values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
