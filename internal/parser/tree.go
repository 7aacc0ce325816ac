// Package parser implements the route-template recursive descent parser
// and the syntax tree it produces. The tree is total: every input
// string, however malformed, yields a complete tree whose tokens
// reproduce the input exactly; absent grammar elements are represented
// by zero-width missing tokens carrying diagnostics rather than by
// parse failures.
package parser

import (
	"strings"

	"github.com/routekit/routetpl/internal/diagnostics"
	"github.com/routekit/routetpl/internal/lexer"
	"github.com/routekit/routetpl/internal/position"
	"github.com/routekit/routetpl/internal/source"
)

// NodeKind discriminates the closed set of node variants. Consumers
// switch exhaustively on it; adding a variant means revisiting every
// switch.
type NodeKind int

const (
	// KindCompilationUnit is the root: root parts plus the trailing
	// end-of-input token.
	KindCompilationUnit NodeKind = iota
	// KindSegment is an ordered run of segment parts with no separators
	// inside.
	KindSegment
	// KindSeparator is a single '/' token between segments.
	KindSeparator
	// KindLiteral is a run of literal text (doubled braces decoded).
	KindLiteral
	// KindParameter is '{' parameter-parts '}'.
	KindParameter
	// KindCatchAll is the leading '*' or '**' of a catch-all parameter.
	KindCatchAll
	// KindParameterName is the parameter's name token.
	KindParameterName
	// KindPolicy is ':' followed by policy fragments.
	KindPolicy
	// KindOptional is the '?' marker.
	KindOptional
	// KindDefaultValue is '=' followed by the default value token.
	KindDefaultValue
	// KindEscapedPolicyFragment is '(' text ')'; the parentheses let the
	// fragment contain characters that would otherwise end the policy.
	KindEscapedPolicyFragment
	// KindUnescapedPolicyFragment is a raw run of policy text.
	KindUnescapedPolicyFragment
)

var nodeKindNames = map[NodeKind]string{
	KindCompilationUnit:         "CompilationUnit",
	KindSegment:                 "Segment",
	KindSeparator:               "Separator",
	KindLiteral:                 "Literal",
	KindParameter:               "Parameter",
	KindCatchAll:                "CatchAll",
	KindParameterName:           "ParameterName",
	KindPolicy:                  "Policy",
	KindOptional:                "Optional",
	KindDefaultValue:            "DefaultValue",
	KindEscapedPolicyFragment:   "EscapedPolicyFragment",
	KindUnescapedPolicyFragment: "UnescapedPolicyFragment",
}

// String returns a string representation of the node kind.
func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Child is a tagged union: exactly one of Node or Token is set.
type Child struct {
	Node  *Node
	Token *lexer.Token
}

// IsNode reports whether the child is a node.
func (c Child) IsNode() bool { return c.Node != nil }

// IsToken reports whether the child is a token.
func (c Child) IsToken() bool { return c.Token != nil }

// Span returns the source span of the child.
func (c Child) Span() position.Span {
	if c.Node != nil {
		return c.Node.Span()
	}
	return c.Token.Span()
}

func nodeChild(n *Node) Child { return Child{Node: n} }
func tokenChild(t lexer.Token) Child { return Child{Token: &t} }

// Node is a non-terminal grammar unit: a kind and an ordered sequence
// of children, each either a node or a token. Nodes are immutable once
// constructed.
type Node struct {
	Kind     NodeKind
	Children []Child
}

func newNode(kind NodeKind, children ...Child) *Node {
	return &Node{Kind: kind, Children: children}
}

// Span returns the union of the spans of all descendant tokens.
func (n *Node) Span() position.Span {
	var span position.Span
	first := true
	n.walkTokens(func(t *lexer.Token) {
		if first {
			span = t.Span()
			first = false
			return
		}
		span = span.Union(t.Span())
	})
	return span
}

// Text returns the raw spelling of the node: the concatenation of every
// descendant token's raw text, in order.
func (n *Node) Text() string {
	var b strings.Builder
	n.walkTokens(func(t *lexer.Token) {
		b.WriteString(t.Text())
	})
	return b.String()
}

// walkTokens visits every descendant token depth-first, in order.
func (n *Node) walkTokens(fn func(*lexer.Token)) {
	for i := range n.Children {
		c := n.Children[i]
		if c.Node != nil {
			c.Node.walkTokens(fn)
		} else {
			fn(c.Token)
		}
	}
}

// Tokens returns the flattened, ordered list of every descendant token.
func (n *Node) Tokens() []lexer.Token {
	var out []lexer.Token
	n.walkTokens(func(t *lexer.Token) {
		out = append(out, *t)
	})
	return out
}

// childNodes returns the node children of the given kind.
func (n *Node) childNodes(kind NodeKind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			out = append(out, c.Node)
		}
	}
	return out
}

// childNode returns the first node child of the given kind.
func (n *Node) childNode(kind NodeKind) *Node {
	for _, c := range n.Children {
		if c.Node != nil && c.Node.Kind == kind {
			return c.Node
		}
	}
	return nil
}

// firstToken returns the first token child, if any.
func (n *Node) firstToken() *lexer.Token {
	for _, c := range n.Children {
		if c.Token != nil {
			return c.Token
		}
	}
	return nil
}

// RouteParameter is the folded descriptor of one parameter node. It is
// derived by the validators, not parsed directly.
type RouteParameter struct {
	// Name is the parameter name; empty when the name token is missing.
	Name string
	// EncodeSlashes is false only for the unescaped catch-all form "**".
	EncodeSlashes bool
	// DefaultValue is the raw default value text, empty when absent.
	DefaultValue string
	// IsOptional reports a trailing '?' marker.
	IsOptional bool
	// IsCatchAll reports a leading '*' or '**'.
	IsCatchAll bool
	// Policies holds one raw text entry per ':'-introduced policy, in
	// order of appearance.
	Policies []string
}

// Tree is the immutable result of a parse: the source character
// sequence, the root compilation unit, the de-duplicated diagnostics in
// first-seen order, and the parameter table.
type Tree struct {
	Source      source.Sequence
	Root        *Node
	Diagnostics []diagnostics.Diagnostic

	params     []RouteParameter
	paramIndex map[string]int // lower-cased name -> index into params
}

// Parameters returns the route parameters in order of first appearance.
func (t *Tree) Parameters() []RouteParameter {
	return t.params
}

// Parameter looks up a route parameter by name, case-insensitively.
func (t *Tree) Parameter(name string) (RouteParameter, bool) {
	i, ok := t.paramIndex[strings.ToLower(name)]
	if !ok {
		return RouteParameter{}, false
	}
	return t.params[i], true
}

// FindCharacter returns the source character whose original span
// contains the given offset.
func (t *Tree) FindCharacter(offset int) (source.Char, bool) {
	return t.Source.Find(offset)
}
