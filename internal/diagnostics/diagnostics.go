// Package diagnostics defines the diagnostic record produced by the
// route-template lexer, parser and validators. A grammar violation is
// data, not a thrown fault: every failure surfaces as a Diagnostic
// attached to a token or appended by a validator pass, and parsing
// always runs to completion.
package diagnostics

import (
	"fmt"

	"github.com/routekit/routetpl/internal/position"
)

// Diagnostic is one reported problem: a human-readable message and the
// source span it applies to.
type Diagnostic struct {
	Message string
	Span    position.Span
}

// New creates a diagnostic.
func New(message string, span position.Span) Diagnostic {
	return Diagnostic{Message: message, Span: span}
}

// String returns a string representation of the diagnostic.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Span, d.Message)
}

// Dedupe removes diagnostics whose (message, span) pair has already
// been seen, preserving first-seen order. Cascading parse failures on
// malformed input tend to report the identical diagnostic at the
// identical location more than once; consumers should see it once.
func Dedupe(diags []Diagnostic) []Diagnostic {
	if len(diags) < 2 {
		return diags
	}
	seen := make(map[Diagnostic]struct{}, len(diags))
	out := diags[:0:0]
	for _, d := range diags {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
