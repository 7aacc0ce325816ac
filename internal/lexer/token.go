package lexer

import (
	"fmt"
	"strings"

	"github.com/routekit/routetpl/internal/diagnostics"
	"github.com/routekit/routetpl/internal/position"
	"github.com/routekit/routetpl/internal/source"
)

// TokenKind represents the type of a route-template token.
type TokenKind int

// String returns a string representation of the token kind.
func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// Token kinds. The single-character kinds are produced by ScanNextToken;
// the trailing kinds only come out of the context-sensitive scans
// requested by the parser.
const (
	TokenEOF TokenKind = iota
	TokenOpenBrace
	TokenCloseBrace
	TokenOpenParen
	TokenCloseParen
	TokenColon
	TokenQuestionMark
	TokenEquals
	TokenSlash
	TokenAsterisk
	TokenAsteriskAsterisk
	TokenText

	TokenLiteral
	TokenParameterName
	TokenDefaultValue
	TokenPolicyFragment
)

// tokenNames provides string representations for token kinds.
var tokenNames = map[TokenKind]string{
	TokenEOF:              "EOF",
	TokenOpenBrace:        "OPEN_BRACE",
	TokenCloseBrace:       "CLOSE_BRACE",
	TokenOpenParen:        "OPEN_PAREN",
	TokenCloseParen:       "CLOSE_PAREN",
	TokenColon:            "COLON",
	TokenQuestionMark:     "QUESTION_MARK",
	TokenEquals:           "EQUALS",
	TokenSlash:            "SLASH",
	TokenAsterisk:         "ASTERISK",
	TokenAsteriskAsterisk: "ASTERISK_ASTERISK",
	TokenText:             "TEXT",
	TokenLiteral:          "LITERAL",
	TokenParameterName:    "PARAMETER_NAME",
	TokenDefaultValue:     "DEFAULT_VALUE",
	TokenPolicyFragment:   "POLICY_FRAGMENT",
}

// Token is a terminal grammar unit: a kind, the contiguous run of
// characters it spans, a decoded value (which may differ from the raw
// spelling, e.g. an escaped "{{" decodes to "{"), attached diagnostics,
// and a missing flag. A missing token is zero-width and stands in for a
// required-but-absent grammar element; it always carries a diagnostic.
// Tokens are immutable once constructed.
type Token struct {
	Kind        TokenKind
	Chars       []source.Char
	Value       string
	Missing     bool
	Diagnostics []diagnostics.Diagnostic

	span position.Span
}

// NewToken creates a token over the given characters.
func NewToken(kind TokenKind, chars []source.Char, value string) Token {
	t := Token{Kind: kind, Chars: chars, Value: value}
	if len(chars) > 0 {
		t.span = chars[0].Span.Union(chars[len(chars)-1].Span)
	}
	return t
}

// NewMissing creates a zero-width missing token at the given source
// offset, carrying the diagnostics that explain its absence.
func NewMissing(kind TokenKind, offset int, diags ...diagnostics.Diagnostic) Token {
	return Token{
		Kind:        kind,
		Missing:     true,
		Diagnostics: diags,
		span:        position.NewSpan(offset, 0),
	}
}

// newEOF creates the end-of-input token, zero-width at the given offset.
func newEOF(offset int) Token {
	return Token{Kind: TokenEOF, span: position.NewSpan(offset, 0)}
}

// Span returns the source span the token covers. Missing and
// end-of-input tokens have zero-width spans.
func (t Token) Span() position.Span {
	return t.span
}

// Text returns the raw spelling of the token: the characters it covers,
// without escape decoding. Concatenating Text over every token of a
// tree in order reproduces the parsed input exactly.
func (t Token) Text() string {
	var b strings.Builder
	for _, c := range t.Chars {
		b.WriteRune(c.Value)
	}
	return b.String()
}

// String returns a string representation of the token.
func (t Token) String() string {
	if t.Missing {
		return fmt.Sprintf("{Kind: %s, missing at %d}", t.Kind, t.span.Start)
	}
	return fmt.Sprintf("{Kind: %s, Text: %q, Span: %s}", t.Kind, t.Text(), t.span)
}
