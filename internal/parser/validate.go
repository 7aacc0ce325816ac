package parser

import (
	"fmt"
	"strings"

	"github.com/routekit/routetpl/internal/diagnostics"
	"github.com/routekit/routetpl/internal/lexer"
)

// validate runs the fixed validator pipeline over a finished tree. Each
// pass is a pure read-only walk that appends to the shared diagnostic
// list; order matters because later passes assume earlier structural
// facts, but no pass reads an earlier pass's diagnostics. The final
// pass also folds every parameter node into the canonical parameter
// table.
func validate(root *Node) ([]RouteParameter, map[string]int, []diagnostics.Diagnostic) {
	var diags []diagnostics.Diagnostic
	validateStart(root, &diags)
	validateNoConsecutiveSeparators(root, &diags)
	validateSegmentParts(root, &diags)
	validateCatchAllPlacement(root, &diags)
	params, index := buildParameterTable(root, &diags)
	return params, index, diags
}

// validateStart checks the leading '~' rule: a template may begin with
// '~' only when it is exactly '~' followed by a separator or the entire
// pattern.
func validateStart(root *Node, diags *[]diagnostics.Diagnostic) {
	if len(root.Children) == 0 {
		return
	}
	segment := root.Children[0].Node
	if segment == nil || segment.Kind != KindSegment || len(segment.Children) == 0 {
		return
	}
	literal := segment.Children[0].Node
	if literal == nil || literal.Kind != KindLiteral {
		return
	}
	tok := literal.firstToken()
	if tok == nil || !strings.HasPrefix(tok.Value, "~") {
		return
	}
	// Literal scanning stops only at special characters, so "~" followed
	// by '/' always ends its segment. A valid rooted template is thus a
	// single-part "~" segment; anything else is malformed.
	if tok.Value == "~" && len(segment.Children) == 1 {
		return
	}
	*diags = append(*diags, diagnostics.New(MsgInvalidLeadingTilde, tok.Span()))
}

// validateNoConsecutiveSeparators flags every "//" pair, spanning both
// separator tokens.
func validateNoConsecutiveSeparators(root *Node, diags *[]diagnostics.Diagnostic) {
	var prev *Node
	for _, c := range root.Children {
		cur := c.Node
		if cur == nil {
			continue
		}
		if cur.Kind == KindSeparator && prev != nil && prev.Kind == KindSeparator {
			*diags = append(*diags, diagnostics.New(MsgConsecutiveSeparators, prev.Span().Union(cur.Span())))
		}
		prev = cur
	}
}

// validateSegmentParts enforces the adjacency rules within a segment:
// no parameter directly follows another, an optional parameter must end
// its segment, and a non-initial optional parameter may only follow a
// lone '.' literal. Exactly one rule fires per adjacent pair.
func validateSegmentParts(root *Node, diags *[]diagnostics.Diagnostic) {
	for _, c := range root.Children {
		segment := c.Node
		if segment == nil || segment.Kind != KindSegment {
			continue
		}
		for i := 1; i < len(segment.Children); i++ {
			prev := segment.Children[i-1].Node
			cur := segment.Children[i].Node
			if prev == nil || cur == nil {
				continue
			}
			switch {
			case isOptionalParameter(cur) && !isPeriodLiteral(prev):
				name, _ := parameterName(cur)
				*diags = append(*diags, diagnostics.New(
					fmt.Sprintf(fmtOptionalPrecededByPeriod, segment.Text(), name, prev.Text()),
					cur.Span()))
			case isOptionalParameter(prev):
				name, _ := parameterName(prev)
				*diags = append(*diags, diagnostics.New(
					fmt.Sprintf(fmtOptionalMustBeLast, segment.Text(), name, cur.Text()),
					cur.Span()))
			case prev.Kind == KindParameter && cur.Kind == KindParameter:
				*diags = append(*diags, diagnostics.New(MsgConsecutiveParameters, prev.Span().Union(cur.Span())))
			}
		}
	}
}

// validateCatchAllPlacement flags a catch-all segment that is not last
// or that shares its segment with any other part.
func validateCatchAllPlacement(root *Node, diags *[]diagnostics.Diagnostic) {
	for i, c := range root.Children {
		segment := c.Node
		if segment == nil || segment.Kind != KindSegment || !segmentHasCatchAll(segment) {
			continue
		}
		if len(segment.Children) > 1 {
			*diags = append(*diags, diagnostics.New(MsgCatchAllInMultiSegment, segment.Span()))
		}
		for _, later := range root.Children[i+1:] {
			if later.Node != nil && later.Node.Kind == KindSegment {
				*diags = append(*diags, diagnostics.New(MsgCatchAllMustBeLast, segment.Span()))
				break
			}
		}
	}
}

// buildParameterTable folds every parameter node into a RouteParameter,
// cross-checking conflicting modifiers and duplicate names. Names are
// compared case-insensitively; the first occurrence wins and stays in
// the table.
func buildParameterTable(root *Node, diags *[]diagnostics.Diagnostic) ([]RouteParameter, map[string]int) {
	var params []RouteParameter
	index := make(map[string]int)

	forEachParameter(root, func(param *Node) {
		rp := foldParameter(param)

		if rp.IsOptional && hasDefaultValue(param) {
			*diags = append(*diags, diagnostics.New(MsgOptionalCannotHaveDefault, param.Span()))
		}
		if rp.IsCatchAll && rp.IsOptional {
			*diags = append(*diags, diagnostics.New(MsgCatchAllCannotBeOptional, param.Span()))
		}

		name, named := parameterName(param)
		if !named {
			return
		}
		key := strings.ToLower(name)
		if _, seen := index[key]; seen {
			*diags = append(*diags, diagnostics.New(fmt.Sprintf(fmtRepeatedParameter, name), param.Span()))
			return
		}
		index[key] = len(params)
		params = append(params, rp)
	})

	return params, index
}

// foldParameter derives the RouteParameter descriptor from one
// parameter node's parts.
func foldParameter(param *Node) RouteParameter {
	rp := RouteParameter{EncodeSlashes: true}
	for _, c := range param.Children {
		part := c.Node
		if part == nil {
			continue
		}
		switch part.Kind {
		case KindParameterName:
			if tok := part.firstToken(); tok != nil && !tok.Missing {
				rp.Name = tok.Value
			}
		case KindCatchAll:
			rp.IsCatchAll = true
			if tok := part.firstToken(); tok != nil && tok.Kind == lexer.TokenAsteriskAsterisk {
				rp.EncodeSlashes = false
			}
		case KindOptional:
			rp.IsOptional = true
		case KindDefaultValue:
			rp.DefaultValue = defaultValueText(part)
		case KindPolicy:
			rp.Policies = append(rp.Policies, policyText(part))
		}
	}
	return rp
}

// policyText returns the raw text of a policy, without its leading
// colon: the concatenation of its fragments' raw spellings.
func policyText(policy *Node) string {
	var b strings.Builder
	for _, c := range policy.Children {
		if c.Node != nil {
			b.WriteString(c.Node.Text())
		}
	}
	return b.String()
}

// defaultValueText returns the raw default value, without the '='.
func defaultValueText(dv *Node) string {
	for _, c := range dv.Children {
		if c.Token != nil && c.Token.Kind == lexer.TokenDefaultValue {
			return c.Token.Value
		}
	}
	return ""
}

// parameterName returns the parameter's name and whether a name token
// is actually present.
func parameterName(param *Node) (string, bool) {
	nameNode := param.childNode(KindParameterName)
	if nameNode == nil {
		return "", false
	}
	tok := nameNode.firstToken()
	if tok == nil || tok.Missing {
		return "", false
	}
	return tok.Value, true
}

func isOptionalParameter(n *Node) bool {
	return n.Kind == KindParameter && n.childNode(KindOptional) != nil
}

func isPeriodLiteral(n *Node) bool {
	if n.Kind != KindLiteral {
		return false
	}
	tok := n.firstToken()
	return tok != nil && tok.Value == "."
}

func hasDefaultValue(param *Node) bool {
	return param.childNode(KindDefaultValue) != nil
}

func segmentHasCatchAll(segment *Node) bool {
	for _, c := range segment.Children {
		if c.Node != nil && c.Node.Kind == KindParameter && c.Node.childNode(KindCatchAll) != nil {
			return true
		}
	}
	return false
}

// forEachParameter visits every parameter node in tree order.
func forEachParameter(n *Node, fn func(*Node)) {
	if n.Kind == KindParameter {
		fn(n)
	}
	for _, c := range n.Children {
		if c.Node != nil {
			forEachParameter(c.Node, fn)
		}
	}
}
