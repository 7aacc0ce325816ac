package lexer

import (
	"testing"

	"github.com/routekit/routetpl/internal/source"
)

// TestScanNextToken tests the generic single-character token stream.
func TestScanNextToken(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []TokenKind
	}{
		{
			name:  "special characters",
			input: "{}():?=/*",
			want: []TokenKind{
				TokenOpenBrace, TokenCloseBrace, TokenOpenParen, TokenCloseParen,
				TokenColon, TokenQuestionMark, TokenEquals, TokenSlash, TokenAsterisk,
			},
		},
		{
			name:  "ordinary text",
			input: "a.b",
			want:  []TokenKind{TokenText, TokenText, TokenText},
		},
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(source.New(tt.input))
			for i, want := range tt.want {
				tok := l.ScanNextToken()
				if tok.Kind != want {
					t.Errorf("token %d = %v, want %v", i, tok.Kind, want)
				}
			}
			for i := 0; i < 3; i++ {
				tok := l.ScanNextToken()
				if tok.Kind != TokenEOF {
					t.Fatalf("expected idempotent EOF, got %v", tok)
				}
				if got, want := tok.Span().Start, len(tt.input); got != want {
					t.Errorf("EOF offset = %d, want %d", got, want)
				}
			}
		})
	}
}

// TestTryScanLiteral tests literal runs including doubled-brace escapes.
func TestTryScanLiteral(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantText  string
		wantValue string
		wantOK    bool
	}{
		{name: "plain", input: "home", wantText: "home", wantValue: "home", wantOK: true},
		{name: "stops at slash", input: "a/b", wantText: "a", wantValue: "a", wantOK: true},
		{name: "stops at open brace", input: "a{id}", wantText: "a", wantValue: "a", wantOK: true},
		{name: "escaped braces decode", input: "a{{b}}c{d", wantText: "a{{b}}c", wantValue: "a{b}c", wantOK: true},
		{name: "lone close brace", input: "}", wantOK: false},
		{name: "lone colon", input: ":", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "asterisk is literal", input: "a*b", wantText: "a*b", wantValue: "a*b", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(source.New(tt.input))
			tok, ok := l.TryScanLiteral()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if l.Position != 0 {
					t.Errorf("failed scan moved the cursor to %d", l.Position)
				}
				return
			}
			if tok.Text() != tt.wantText {
				t.Errorf("raw = %q, want %q", tok.Text(), tt.wantText)
			}
			if tok.Value != tt.wantValue {
				t.Errorf("value = %q, want %q", tok.Value, tt.wantValue)
			}
		})
	}
}

// TestContextScans tests the remaining context-sensitive scan rules.
func TestContextScans(t *testing.T) {
	tests := []struct {
		name  string
		scan  func(*Lexer) (Token, bool)
		input string
		want  string
	}{
		{
			name:  "parameter name stops at colon",
			scan:  (*Lexer).TryScanParameterName,
			input: "id:int",
			want:  "id",
		},
		{
			name:  "parameter name may contain slash",
			scan:  (*Lexer).TryScanParameterName,
			input: "a/b}",
			want:  "a/b",
		},
		{
			name:  "parameter name stops at asterisk",
			scan:  (*Lexer).TryScanParameterName,
			input: "a*b",
			want:  "a",
		},
		{
			name:  "default value may contain colon and question mark",
			scan:  (*Lexer).TryScanDefaultValue,
			input: "a:b?=c/d",
			want:  "a:b?=c",
		},
		{
			name:  "unescaped policy fragment stops at open paren",
			scan:  (*Lexer).TryScanUnescapedPolicyFragment,
			input: "int(3)",
			want:  "int",
		},
		{
			name:  "escaped policy fragment allows specials",
			scan:  (*Lexer).TryScanEscapedPolicyFragment,
			input: "a:b?=c)x",
			want:  "a:b?=c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(source.New(tt.input))
			tok, ok := tt.scan(l)
			if !ok {
				t.Fatal("scan failed")
			}
			if tok.Value != tt.want {
				t.Errorf("value = %q, want %q", tok.Value, tt.want)
			}
			if l.Position != len(tt.want) {
				t.Errorf("cursor = %d, want %d", l.Position, len(tt.want))
			}
		})
	}
}

// TestRewind tests the single-position rewind that lets the parser
// reinterpret a peeked single-character token under a different scan.
func TestRewind(t *testing.T) {
	l := New(source.New("abc/"))
	tok := l.ScanNextToken()
	if tok.Kind != TokenText || tok.Text() != "a" {
		t.Fatalf("unexpected token %v", tok)
	}
	l.Position--
	lit, ok := l.TryScanLiteral()
	if !ok || lit.Text() != "abc" {
		t.Fatalf("literal after rewind = %v %v, want abc", lit, ok)
	}
	if next := l.ScanNextToken(); next.Kind != TokenSlash {
		t.Errorf("next = %v, want slash", next)
	}
}

// TestMissingToken tests the zero-width missing token shape.
func TestMissingToken(t *testing.T) {
	tok := NewMissing(TokenCloseBrace, 7)
	if !tok.Missing {
		t.Error("Missing flag not set")
	}
	if tok.Text() != "" {
		t.Errorf("raw = %q, want empty", tok.Text())
	}
	if got := tok.Span(); got.Start != 7 || !got.IsEmpty() {
		t.Errorf("span = %v, want zero-width at 7", got)
	}
}
