// Package editor provides the thin, read-only tree services consumed by
// editor integrations: brace matching, completion context and syntax
// classification. Everything here works purely off the parsed tree;
// host-compiler symbol lookups stay behind the CallableResolver
// interface so this package never depends on a specific compiler's
// object model.
package editor

import (
	"strings"

	"github.com/routekit/routetpl/internal/lexer"
	"github.com/routekit/routetpl/internal/parser"
	"github.com/routekit/routetpl/internal/position"
)

// CallableResolver resolves the callable a route template is bound to
// (an HTTP handler, an action method) into its parameter name list.
// Implementations wrap whatever symbol infrastructure the host provides.
type CallableResolver interface {
	ResolveTargetCallable(callSite string) ([]string, error)
}

// BracePair is a matched open/close token pair.
type BracePair struct {
	Open  position.Span
	Close position.Span
}

// MatchBracePair returns the innermost brace or parenthesis pair whose
// open or close token covers the given source offset: the braces of a
// parameter node, or the parentheses of an escaped policy fragment.
// There is no match when either side of the pair is missing.
func MatchBracePair(tree *parser.Tree, offset int) (BracePair, bool) {
	var found BracePair
	ok := false
	walkNodes(tree.Root, func(n *parser.Node) {
		switch n.Kind {
		case parser.KindParameter:
			if pair, hit := matchPair(n, lexer.TokenOpenBrace, lexer.TokenCloseBrace, offset); hit {
				found, ok = pair, true
			}
		case parser.KindEscapedPolicyFragment:
			if pair, hit := matchPair(n, lexer.TokenOpenParen, lexer.TokenCloseParen, offset); hit {
				found, ok = pair, true
			}
		}
	})
	return found, ok
}

// matchPair finds the open/close tokens of the given kinds among the
// node's direct children and reports a pair when either token covers
// the offset. Later (inner) matches overwrite earlier ones in the
// caller, which yields the innermost pair.
func matchPair(n *parser.Node, openKind, closeKind lexer.TokenKind, offset int) (BracePair, bool) {
	var open, closing *lexer.Token
	for _, c := range n.Children {
		if c.Token == nil {
			continue
		}
		switch c.Token.Kind {
		case openKind:
			open = c.Token
		case closeKind:
			closing = c.Token
		}
	}
	if open == nil || closing == nil || open.Missing || closing.Missing {
		return BracePair{}, false
	}
	if !open.Span().Contains(offset) && !closing.Span().Contains(offset) {
		return BracePair{}, false
	}
	return BracePair{Open: open.Span(), Close: closing.Span()}, true
}

// Classification is one (token kind, span) pair for syntax highlighting.
type Classification struct {
	Kind lexer.TokenKind
	Span position.Span
}

// Classify returns the flattened, ordered token classification list for
// the whole tree. Zero-width tokens (missing, end-of-input) are
// omitted; there is nothing to color.
func Classify(tree *parser.Tree) []Classification {
	var out []Classification
	for _, tok := range tree.Root.Tokens() {
		if tok.Span().IsEmpty() {
			continue
		}
		out = append(out, Classification{Kind: tok.Kind, Span: tok.Span()})
	}
	return out
}

// PolicyNames lists the well-known parameter policy names offered as
// completion candidates.
var PolicyNames = []string{
	"alpha", "bool", "datetime", "decimal", "double", "file", "float",
	"guid", "int", "length", "long", "max", "maxlength", "min",
	"minlength", "nonfile", "range", "regex", "required",
}

// Completion is the context a completion provider needs at a caret
// offset. The provider performs its own text insertion and escaping;
// this package only reports what surrounds the caret.
type Completion struct {
	// Token is the innermost token covering the character before the
	// caret, if any.
	Token *lexer.Token
	// ParameterNames are the names declared in the template.
	ParameterNames []string
	// PolicyNames are the built-in policy candidates.
	PolicyNames []string
}

// CompletionContext gathers completion context for the given caret
// offset.
func CompletionContext(tree *parser.Tree, caret int) Completion {
	ctx := Completion{PolicyNames: PolicyNames}
	for _, p := range tree.Parameters() {
		if p.Name != "" {
			ctx.ParameterNames = append(ctx.ParameterNames, p.Name)
		}
	}
	tokens := tree.Root.Tokens()
	for i := range tokens {
		if !tokens[i].Span().IsEmpty() && tokens[i].Span().Contains(caret-1) {
			ctx.Token = &tokens[i]
			break
		}
	}
	return ctx
}

// UnboundParameters resolves the callable bound at callSite and
// returns the template parameter names that have no matching callable
// parameter, compared case-insensitively. This is the cross-check
// layer between the grammar and the host program; the grammar itself
// never knows about handler signatures.
func UnboundParameters(tree *parser.Tree, r CallableResolver, callSite string) ([]string, error) {
	bound, err := r.ResolveTargetCallable(callSite)
	if err != nil {
		return nil, err
	}
	boundSet := make(map[string]struct{}, len(bound))
	for _, name := range bound {
		boundSet[strings.ToLower(name)] = struct{}{}
	}
	var unbound []string
	for _, p := range tree.Parameters() {
		if p.Name == "" {
			continue
		}
		if _, ok := boundSet[strings.ToLower(p.Name)]; !ok {
			unbound = append(unbound, p.Name)
		}
	}
	return unbound, nil
}

// walkNodes visits every node depth-first, parents before children.
func walkNodes(n *parser.Node, fn func(*parser.Node)) {
	fn(n)
	for _, c := range n.Children {
		if c.Node != nil {
			walkNodes(c.Node, fn)
		}
	}
}
