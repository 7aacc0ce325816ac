package source

import "testing"

// TestNew tests plain-text sequences: one character per rune, byte
// accurate spans.
func TestNew(t *testing.T) {
	seq := New("aéb") // é is two bytes in UTF-8
	if seq.Len() != 3 {
		t.Fatalf("len = %d, want 3", seq.Len())
	}
	tests := []struct {
		idx        int
		value      rune
		start, len int
	}{
		{0, 'a', 0, 1},
		{1, 'é', 1, 2},
		{2, 'b', 3, 1},
	}
	for _, tt := range tests {
		c := seq.At(tt.idx)
		if c.Value != tt.value || c.Span.Start != tt.start || c.Span.Length != tt.len {
			t.Errorf("At(%d) = %+v, want %c at [%d,+%d)", tt.idx, c, tt.value, tt.start, tt.len)
		}
	}
	if got := seq.Span(); got.Start != 0 || got.End() != 4 {
		t.Errorf("span = %v, want [0..4)", got)
	}
	if seq.Text() != "aéb" {
		t.Errorf("text = %q", seq.Text())
	}
}

// TestFind tests position lookup, including multi-byte characters and
// out-of-range offsets.
func TestFind(t *testing.T) {
	seq := New("aéb")
	tests := []struct {
		offset int
		want   rune
		ok     bool
	}{
		{0, 'a', true},
		{1, 'é', true},
		{2, 'é', true}, // second byte of é
		{3, 'b', true},
		{4, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		c, ok := seq.Find(tt.offset)
		if ok != tt.ok {
			t.Errorf("Find(%d) ok = %v, want %v", tt.offset, ok, tt.ok)
			continue
		}
		if ok && c.Value != tt.want {
			t.Errorf("Find(%d) = %c, want %c", tt.offset, c.Value, tt.want)
		}
	}
}

// TestDecodeQuoted tests escape decoding with original-source spans.
func TestDecodeQuoted(t *testing.T) {
	// The literal contents `a\\b` at source offset 10: three logical
	// characters, the middle one spanning two source bytes.
	seq := DecodeQuoted(`a\\b`, 10)
	if seq.Len() != 3 {
		t.Fatalf("len = %d, want 3", seq.Len())
	}
	if seq.Text() != `a\b` {
		t.Errorf("decoded text = %q, want %q", seq.Text(), `a\b`)
	}
	mid := seq.At(1)
	if mid.Value != '\\' || mid.Span.Start != 11 || mid.Span.Length != 2 {
		t.Errorf("middle char = %+v, want backslash at [11,+2)", mid)
	}
	// Both source bytes of the escape map back to the same character.
	for _, offset := range []int{11, 12} {
		c, ok := seq.Find(offset)
		if !ok || c.Value != '\\' {
			t.Errorf("Find(%d) = %v %v, want backslash", offset, c, ok)
		}
	}
	if got := seq.Span(); got.Start != 10 || got.End() != 14 {
		t.Errorf("span = %v, want [10..14)", got)
	}
}

// TestDecodeQuotedControlEscapes tests the recognized control escapes.
func TestDecodeQuotedControlEscapes(t *testing.T) {
	seq := DecodeQuoted(`\n\t\"`, 0)
	want := []rune{'\n', '\t', '"'}
	if seq.Len() != len(want) {
		t.Fatalf("len = %d, want %d", seq.Len(), len(want))
	}
	for i, r := range want {
		if seq.At(i).Value != r {
			t.Errorf("char %d = %q, want %q", i, seq.At(i).Value, r)
		}
		if seq.At(i).Span.Length != 2 {
			t.Errorf("char %d length = %d, want 2", i, seq.At(i).Span.Length)
		}
	}
}

// TestEmptySequence tests that an empty sequence keeps its base offset.
func TestEmptySequence(t *testing.T) {
	seq := NewAt("", 5)
	if got := seq.Span(); got.Start != 5 || !got.IsEmpty() {
		t.Errorf("span = %v, want zero-width at 5", got)
	}
	if _, ok := seq.Find(5); ok {
		t.Error("Find on empty sequence should fail")
	}
}
