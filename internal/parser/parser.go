package parser

import (
	"github.com/routekit/routetpl/internal/diagnostics"
	"github.com/routekit/routetpl/internal/lexer"
	"github.com/routekit/routetpl/internal/position"
	"github.com/routekit/routetpl/internal/source"
)

// parser is the recursive descent state: the lexer and a single token
// of lookahead. It never backtracks beyond a one-position rewind of the
// lexer cursor, used to reinterpret a generic single-character token
// under a context-sensitive scan rule.
type parser struct {
	lex     *lexer.Lexer
	current lexer.Token
}

// Parse converts a character sequence into a route-template tree. It is
// total: it never returns nil and never fails for grammar reasons; all
// problems surface as diagnostics on the returned tree.
func Parse(text source.Sequence) *Tree {
	p := &parser{lex: lexer.New(text)}
	p.current = p.lex.ScanNextToken()
	root := p.parseCompilationUnit()

	// Token-level diagnostics first, then validator output, de-duplicated
	// in first-seen order.
	var diags []diagnostics.Diagnostic
	root.walkTokens(func(t *lexer.Token) {
		diags = append(diags, t.Diagnostics...)
	})
	params, index, vdiags := validate(root)
	diags = diagnostics.Dedupe(append(diags, vdiags...))

	return &Tree{
		Source:      text,
		Root:        root,
		Diagnostics: diags,
		params:      params,
		paramIndex:  index,
	}
}

// ParseString is a convenience wrapper over Parse for plain text input.
func ParseString(text string) *Tree {
	return Parse(source.New(text))
}

// consumeCurrentToken returns the current token and advances the
// lookahead.
func (p *parser) consumeCurrentToken() lexer.Token {
	tok := p.current
	p.current = p.lex.ScanNextToken()
	return tok
}

// moveBackBeforePreviousScan rewinds the lexer to just before the
// current token so the same position can be re-scanned under a
// context-sensitive rule. Every ScanNextToken token is one character
// wide, so the rewind is a single cursor decrement.
func (p *parser) moveBackBeforePreviousScan() {
	if p.current.Kind != lexer.TokenEOF {
		p.lex.Position--
	}
}

// consumeTokenKind consumes the current token if it has the expected
// kind, or synthesizes a zero-width missing token carrying the given
// diagnostic message. Parsing continues either way.
func (p *parser) consumeTokenKind(kind lexer.TokenKind, message string) lexer.Token {
	if p.current.Kind == kind {
		return p.consumeCurrentToken()
	}
	at := p.current.Span().Start
	return lexer.NewMissing(kind, at, diagnostics.New(message, position.NewSpan(at, 0)))
}

// parseCompilationUnit parses the whole template. The top level is
// iterative, not recursive, so pathological inputs with thousands of
// segments do not grow the call stack.
func (p *parser) parseCompilationUnit() *Node {
	var children []Child
	for p.current.Kind != lexer.TokenEOF {
		if p.current.Kind == lexer.TokenSlash {
			children = append(children, nodeChild(newNode(KindSeparator, tokenChild(p.consumeCurrentToken()))))
			continue
		}
		children = append(children, nodeChild(p.parseSegment()))
	}
	children = append(children, tokenChild(p.current))
	return newNode(KindCompilationUnit, children...)
}

// parseSegment parses segment parts until a separator or end of input.
func (p *parser) parseSegment() *Node {
	var children []Child
	for p.current.Kind != lexer.TokenEOF && p.current.Kind != lexer.TokenSlash {
		children = append(children, nodeChild(p.parsePart()))
	}
	return newNode(KindSegment, children...)
}

// parsePart parses one segment part: a parameter if the current token
// is a lone '{', otherwise literal text. A doubled "{{" is an escaped
// brace and falls through to the literal scan, which decodes it.
func (p *parser) parsePart() *Node {
	if p.current.Kind == lexer.TokenOpenBrace {
		openBrace := p.consumeCurrentToken()
		if p.current.Kind != lexer.TokenOpenBrace {
			return p.parseParameter(openBrace)
		}
		p.moveBackBeforePreviousScan()
	}
	p.moveBackBeforePreviousScan()
	lit, ok := p.lex.TryScanLiteral()
	if !ok {
		// A lone special character ('}', '(', ')', ':', '?', '=') that
		// the literal scan refuses: keep the single-character token as
		// the literal's text so parsing always makes progress.
		lit = p.lex.ScanNextToken()
	}
	p.consumeCurrentToken()
	return newNode(KindLiteral, tokenChild(lit))
}

// parseParameter parses the parameter parts after an opening brace and
// requires a closing brace, tolerating its absence.
func (p *parser) parseParameter(openBrace lexer.Token) *Node {
	children := []Child{tokenChild(openBrace)}
	children = append(children, p.parseParameterParts()...)
	children = append(children, tokenChild(p.consumeTokenKind(lexer.TokenCloseBrace, MsgMismatchedParameter)))
	return newNode(KindParameter, children...)
}

// parseParameterParts parses the ordered parts inside a parameter: an
// optional leading catch-all, an optional name, then any sequence of
// policies, optional markers and default values. The first '}' or end
// of input ends the list.
func (p *parser) parseParameterParts() []Child {
	var parts []Child

	// Catch-all: '*' alone, or '**' for the slash-preserving form.
	if p.current.Kind == lexer.TokenAsterisk {
		first := p.consumeCurrentToken()
		if p.current.Kind == lexer.TokenAsterisk {
			second := p.consumeCurrentToken()
			chars := append(append([]source.Char{}, first.Chars...), second.Chars...)
			parts = append(parts, nodeChild(newNode(KindCatchAll,
				tokenChild(lexer.NewToken(lexer.TokenAsteriskAsterisk, chars, "**")))))
		} else {
			parts = append(parts, nodeChild(newNode(KindCatchAll, tokenChild(first))))
		}
	}

	p.moveBackBeforePreviousScan()
	name, ok := p.lex.TryScanParameterName()
	p.consumeCurrentToken()
	if ok {
		parts = append(parts, nodeChild(newNode(KindParameterName, tokenChild(name))))
	} else if p.current.Kind != lexer.TokenEOF {
		at := p.current.Span().Start
		missing := lexer.NewMissing(lexer.TokenParameterName, at,
			diagnostics.New(MsgInvalidParameterName, position.NewSpan(at, 0)))
		parts = append(parts, nodeChild(newNode(KindParameterName, tokenChild(missing))))
	}

	for p.current.Kind != lexer.TokenEOF {
		switch p.current.Kind {
		case lexer.TokenColon:
			parts = append(parts, nodeChild(p.parsePolicy()))
		case lexer.TokenQuestionMark:
			parts = append(parts, nodeChild(newNode(KindOptional, tokenChild(p.consumeCurrentToken()))))
		case lexer.TokenEquals:
			parts = append(parts, nodeChild(p.parseDefaultValue()))
		default:
			// '}' ends the parameter; anything else is left for the
			// enclosing segment to reinterpret.
			return parts
		}
	}
	return parts
}

// parsePolicy parses ':' followed by policy fragments until one of
// '}' ':' '?' '=' or end of input.
func (p *parser) parsePolicy() *Node {
	children := []Child{tokenChild(p.consumeCurrentToken())}
	for {
		switch p.current.Kind {
		case lexer.TokenEOF, lexer.TokenCloseBrace, lexer.TokenColon,
			lexer.TokenQuestionMark, lexer.TokenEquals:
			return newNode(KindPolicy, children...)
		case lexer.TokenOpenParen:
			children = append(children, nodeChild(p.parseEscapedPolicyFragment()))
		default:
			p.moveBackBeforePreviousScan()
			frag, ok := p.lex.TryScanUnescapedPolicyFragment()
			p.consumeCurrentToken()
			if !ok {
				return newNode(KindPolicy, children...)
			}
			children = append(children, nodeChild(newNode(KindUnescapedPolicyFragment, tokenChild(frag))))
		}
	}
}

// parseEscapedPolicyFragment parses '(' text ')'. The parenthesized
// text may contain any character; a missing ')' is tolerated with a
// diagnostic.
func (p *parser) parseEscapedPolicyFragment() *Node {
	children := []Child{tokenChild(p.consumeCurrentToken())}
	p.moveBackBeforePreviousScan()
	frag, ok := p.lex.TryScanEscapedPolicyFragment()
	p.consumeCurrentToken()
	if ok {
		children = append(children, tokenChild(frag))
	}
	children = append(children, tokenChild(p.consumeTokenKind(lexer.TokenCloseParen, MsgMismatchedParameter)))
	return newNode(KindEscapedPolicyFragment, children...)
}

// parseDefaultValue parses '=' followed by the default value text.
func (p *parser) parseDefaultValue() *Node {
	equals := p.consumeCurrentToken()
	p.moveBackBeforePreviousScan()
	value, ok := p.lex.TryScanDefaultValue()
	p.consumeCurrentToken()
	if !ok {
		at := p.current.Span().Start
		value = lexer.NewMissing(lexer.TokenDefaultValue, at,
			diagnostics.New(MsgMissingDefaultValue, position.NewSpan(at, 0)))
	}
	return newNode(KindDefaultValue, tokenChild(equals), tokenChild(value))
}
