// Package lexer implements the route-template lexical analyzer. It is
// pull-based: ScanNextToken produces exactly one token per call, and
// the special characters of the grammar ({ } ( ) : ? = / *) each form a
// single-character token. Runs of ordinary text are never tokenized by
// ScanNextToken; their boundaries depend on parser context, so the
// parser requests them explicitly through the TryScan* operations after
// rewinding the cursor one position.
package lexer

import (
	"strings"

	"github.com/routekit/routetpl/internal/source"
)

// Lexer scans a character sequence. Position is the index of the next
// character to scan; the parser rewinds by decrementing it directly,
// which is sound because every ScanNextToken token is exactly one
// character wide.
type Lexer struct {
	text     source.Sequence
	Position int
}

// New creates a lexer over the given character sequence.
func New(text source.Sequence) *Lexer {
	return &Lexer{text: text}
}

// Text returns the character sequence being scanned.
func (l *Lexer) Text() source.Sequence {
	return l.text
}

// atEnd reports whether the cursor is past the last character.
func (l *Lexer) atEnd() bool {
	return l.Position >= l.text.Len()
}

// peek returns the character at offset from the cursor.
func (l *Lexer) peek(offset int) (source.Char, bool) {
	i := l.Position + offset
	if i < 0 || i >= l.text.Len() {
		return source.Char{}, false
	}
	return l.text.At(i), true
}

// ScanNextToken returns the next single-character token, advancing the
// cursor past it. At end of input it returns the end-of-input token
// without moving, so the call is idempotent at the boundary.
func (l *Lexer) ScanNextToken() Token {
	if l.atEnd() {
		return newEOF(l.text.Span().End())
	}
	ch := l.text.At(l.Position)
	l.Position++
	return NewToken(singleCharKind(ch.Value), l.text.Slice(l.Position-1, l.Position).Chars(), string(ch.Value))
}

// singleCharKind maps a character to its token kind. Characters outside
// the grammar's special set become generic text tokens.
func singleCharKind(r rune) TokenKind {
	switch r {
	case '{':
		return TokenOpenBrace
	case '}':
		return TokenCloseBrace
	case '(':
		return TokenOpenParen
	case ')':
		return TokenCloseParen
	case ':':
		return TokenColon
	case '?':
		return TokenQuestionMark
	case '=':
		return TokenEquals
	case '/':
		return TokenSlash
	case '*':
		return TokenAsterisk
	default:
		return TokenText
	}
}

// TryScanLiteral consumes a maximal run of literal text: characters
// outside { } ( ) : ? = /, plus doubled-brace escapes ("{{" or "}}"),
// which consume both characters and decode to a single brace. Returns
// false if the run is empty.
func (l *Lexer) TryScanLiteral() (Token, bool) {
	start := l.Position
	var value strings.Builder
	for !l.atEnd() {
		ch := l.text.At(l.Position)
		if ch.Value == '{' || ch.Value == '}' {
			next, ok := l.peek(1)
			if !ok || next.Value != ch.Value {
				break
			}
			value.WriteRune(ch.Value)
			l.Position += 2
			continue
		}
		if isLiteralStop(ch.Value) {
			break
		}
		value.WriteRune(ch.Value)
		l.Position++
	}
	if l.Position == start {
		return Token{}, false
	}
	return NewToken(TokenLiteral, l.text.Slice(start, l.Position).Chars(), value.String()), true
}

func isLiteralStop(r rune) bool {
	switch r {
	case '{', '}', '(', ')', ':', '?', '=', '/':
		return true
	}
	return false
}

// TryScanParameterName consumes a maximal run of characters excluding
// { } : ? = *. Returns false if the run is empty.
func (l *Lexer) TryScanParameterName() (Token, bool) {
	return l.scanRun(TokenParameterName, func(r rune) bool {
		switch r {
		case '{', '}', ':', '?', '=', '*':
			return true
		}
		return false
	})
}

// TryScanDefaultValue consumes a maximal run of characters excluding
// { } /. Default values may contain ':' and other special characters up
// to the closing brace. Returns false if the run is empty.
func (l *Lexer) TryScanDefaultValue() (Token, bool) {
	return l.scanRun(TokenDefaultValue, func(r rune) bool {
		switch r {
		case '{', '}', '/':
			return true
		}
		return false
	})
}

// TryScanUnescapedPolicyFragment consumes a maximal run of characters
// excluding { } : ? = (. Returns false if the run is empty.
func (l *Lexer) TryScanUnescapedPolicyFragment() (Token, bool) {
	return l.scanRun(TokenPolicyFragment, func(r rune) bool {
		switch r {
		case '{', '}', ':', '?', '=', '(':
			return true
		}
		return false
	})
}

// TryScanEscapedPolicyFragment consumes a maximal run up to, and not
// including, the next ')'. Any character may appear, including the ones
// that would terminate an unescaped fragment. Returns false if the run
// is empty.
func (l *Lexer) TryScanEscapedPolicyFragment() (Token, bool) {
	return l.scanRun(TokenPolicyFragment, func(r rune) bool {
		return r == ')'
	})
}

// scanRun consumes characters until stop reports true or the input
// ends.
func (l *Lexer) scanRun(kind TokenKind, stop func(rune) bool) (Token, bool) {
	start := l.Position
	for !l.atEnd() && !stop(l.text.At(l.Position).Value) {
		l.Position++
	}
	if l.Position == start {
		return Token{}, false
	}
	chars := l.text.Slice(start, l.Position).Chars()
	var value strings.Builder
	for _, c := range chars {
		value.WriteRune(c.Value)
	}
	return NewToken(kind, chars, value.String()), true
}
