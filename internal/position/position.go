// Package position provides source span tracking for the routetpl
// parsing engine. Spans are byte-offset based: a route template is a
// single string (often embedded in a larger source file), so a start
// offset and a length identify a range precisely without line/column
// bookkeeping.
package position

import "fmt"

// Span represents a half-open range [Start, Start+Length) of byte
// offsets in the original, un-decoded source text.
type Span struct {
	Start  int // 0-based byte offset of the first byte
	Length int // number of bytes covered
}

// NewSpan creates a span from a start offset and length.
func NewSpan(start, length int) Span {
	return Span{Start: start, Length: length}
}

// FromBounds creates a span from inclusive start and exclusive end offsets.
func FromBounds(start, end int) Span {
	return Span{Start: start, Length: end - start}
}

// End returns the exclusive end offset of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

// IsEmpty returns true if the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Length == 0
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End()
}

// Union returns the smallest span covering both this span and other.
func (s Span) Union(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End()
	if other.End() > end {
		end = other.End()
	}
	return FromBounds(start, end)
}

// String returns a string representation of the span.
func (s Span) String() string {
	return fmt.Sprintf("[%d..%d)", s.Start, s.End())
}
