package lint

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/routekit/routetpl/internal/diagnostics"
	"github.com/routekit/routetpl/internal/parser"
)

// Result is the outcome of checking one template.
type Result struct {
	Template    string
	Diagnostics []diagnostics.Diagnostic
}

// OK reports whether the template parsed without diagnostics.
func (r Result) OK() bool {
	return len(r.Diagnostics) == 0
}

// CheckTemplate parses one route template and returns its diagnostics.
func CheckTemplate(template string) Result {
	tree := parser.ParseString(template)
	return Result{Template: template, Diagnostics: tree.Diagnostics}
}

// CheckFile checks a template file: one template per line, blank lines
// and '#' comments skipped.
func CheckFile(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates: %w", err)
	}
	defer f.Close()

	var results []Result
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		results = append(results, CheckTemplate(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read templates %s: %w", path, err)
	}
	return results, nil
}

// Renderer writes check results in a human-readable form.
type Renderer struct {
	out      io.Writer
	template lipgloss.Style
	errMark  lipgloss.Style
	okMark   lipgloss.Style
	span     lipgloss.Style
}

// NewRenderer creates a renderer. With color disabled all styles are
// identity.
func NewRenderer(out io.Writer, color bool) *Renderer {
	r := &Renderer{out: out}
	if color {
		r.template = lipgloss.NewStyle().Bold(true)
		r.errMark = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		r.okMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		r.span = lipgloss.NewStyle().Faint(true)
	}
	return r
}

// Render writes one result.
func (r *Renderer) Render(res Result) {
	if res.OK() {
		fmt.Fprintf(r.out, "%s %s\n", r.okMark.Render("ok"), r.template.Render(res.Template))
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", r.errMark.Render("error"), r.template.Render(res.Template))
	for _, d := range res.Diagnostics {
		fmt.Fprintf(r.out, "  %s %s\n", r.span.Render(d.Span.String()), d.Message)
	}
}

// RenderAll writes every result and returns the number of templates
// with diagnostics.
func (r *Renderer) RenderAll(results []Result) int {
	failed := 0
	for _, res := range results {
		r.Render(res)
		if !res.OK() {
			failed++
		}
	}
	return failed
}
