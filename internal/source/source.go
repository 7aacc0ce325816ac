// Package source models a route template as an indexable sequence of
// decoded characters that remember their positions in the original,
// un-decoded source text. Templates frequently arrive as quoted string
// literals inside a larger file; grammar analysis runs over the decoded
// characters while diagnostics and editor features must report offsets
// into the original bytes. The per-character span mapping bridges the
// two.
package source

import (
	"strings"
	"unicode/utf8"

	"github.com/routekit/routetpl/internal/position"
)

// Char is a single decoded character together with the span it occupies
// in the original source text. For plain input the span is simply the
// character's own byte range; for escaped input (e.g. `\\` inside a
// quoted literal) one decoded character may cover several source bytes.
type Char struct {
	Value rune
	Span  position.Span
}

// Sequence is an ordered, contiguous run of decoded characters.
// Sequences are immutable once constructed; sub-sequences share the
// backing array.
type Sequence struct {
	chars []Char
	base  int // source offset of the sequence start, for empty sequences
}

// New builds a sequence over plain (un-escaped) text. Each rune maps to
// its own byte range starting at offset base.
func New(text string) Sequence {
	return NewAt(text, 0)
}

// NewAt builds a sequence over plain text whose first byte sits at the
// given offset in the enclosing source.
func NewAt(text string, base int) Sequence {
	chars := make([]Char, 0, len(text))
	for i, r := range text {
		chars = append(chars, Char{
			Value: r,
			Span:  position.NewSpan(base+i, utf8.RuneLen(r)),
		})
	}
	return Sequence{chars: chars, base: base}
}

// NewFromChars wraps an already-decoded character slice, for callers
// that performed their own escape decoding.
func NewFromChars(chars []Char) Sequence {
	s := Sequence{chars: chars}
	if len(chars) > 0 {
		s.base = chars[0].Span.Start
	}
	return s
}

// DecodeQuoted builds a sequence from the contents of a quoted string
// literal, resolving backslash escapes so that each decoded character
// spans the full escape sequence it came from. The text passed in is
// the literal's contents (quotes already stripped); base is the source
// offset of the first content byte. Unrecognized escapes decode to the
// escaped character itself, spanning both bytes.
func DecodeQuoted(text string, base int) Sequence {
	chars := make([]Char, 0, len(text))
	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r != '\\' || i+size >= len(text) {
			chars = append(chars, Char{Value: r, Span: position.NewSpan(base+i, size)})
			i += size
			continue
		}
		esc, escSize := utf8.DecodeRuneInString(text[i+size:])
		value := esc
		switch esc {
		case 'n':
			value = '\n'
		case 't':
			value = '\t'
		case 'r':
			value = '\r'
		case '0':
			value = 0
		}
		chars = append(chars, Char{Value: value, Span: position.NewSpan(base+i, size+escSize)})
		i += size + escSize
	}
	return Sequence{chars: chars, base: base}
}

// Len returns the number of decoded characters.
func (s Sequence) Len() int {
	return len(s.chars)
}

// At returns the character at index i.
func (s Sequence) At(i int) Char {
	return s.chars[i]
}

// Slice returns the sub-sequence [i, j).
func (s Sequence) Slice(i, j int) Sequence {
	sub := Sequence{chars: s.chars[i:j], base: s.base}
	if i < len(s.chars) {
		sub.base = s.chars[i].Span.Start
	}
	return sub
}

// Chars returns the underlying character slice. Callers must not
// modify it.
func (s Sequence) Chars() []Char {
	return s.chars
}

// Find returns the character whose original span contains the given
// source offset, or false if no character covers it.
func (s Sequence) Find(offset int) (Char, bool) {
	// Binary search over the ordered, non-overlapping spans.
	lo, hi := 0, len(s.chars)
	for lo < hi {
		mid := (lo + hi) / 2
		c := s.chars[mid]
		switch {
		case offset < c.Span.Start:
			hi = mid
		case offset >= c.Span.End():
			lo = mid + 1
		default:
			return c, true
		}
	}
	return Char{}, false
}

// Span returns the source span covered by the whole sequence. An empty
// sequence yields a zero-width span at the sequence's base offset.
func (s Sequence) Span() position.Span {
	if len(s.chars) == 0 {
		return position.NewSpan(s.base, 0)
	}
	return s.chars[0].Span.Union(s.chars[len(s.chars)-1].Span)
}

// Text returns the decoded text of the sequence.
func (s Sequence) Text() string {
	var b strings.Builder
	for _, c := range s.chars {
		b.WriteRune(c.Value)
	}
	return b.String()
}
