package lint

import (
	"bytes"
	"strings"
	"testing"
)

func TestCheckTemplate(t *testing.T) {
	if res := CheckTemplate("{controller}/{action}/{id?}"); !res.OK() {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	res := CheckTemplate("{id")
	if res.OK() {
		t.Fatal("expected diagnostics for unclosed parameter")
	}
	if res.Template != "{id" {
		t.Fatalf("template = %q", res.Template)
	}
}

func TestCheckFile(t *testing.T) {
	path := writeFile(t, "routes.txt", `
# site routes
{controller}/{action}

blog/{slug}
{id
`)
	results, err := CheckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if !results[0].OK() || !results[1].OK() {
		t.Fatalf("expected first two templates to pass: %+v", results[:2])
	}
	if results[2].OK() {
		t.Fatal("expected last template to fail")
	}
}

func TestCheckFileMissing(t *testing.T) {
	if _, err := CheckFile("no/such/file.txt"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRenderAll(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, false)

	results := []Result{
		CheckTemplate("blog/{slug}"),
		CheckTemplate("a//b"),
	}
	failed := r.RenderAll(results)
	if failed != 1 {
		t.Fatalf("failed = %d, want 1", failed)
	}

	out := buf.String()
	if !strings.Contains(out, "ok blog/{slug}") {
		t.Fatalf("missing ok line in %q", out)
	}
	if !strings.Contains(out, "error a//b") {
		t.Fatalf("missing error line in %q", out)
	}
	if !strings.Contains(out, "cannot appear consecutively") {
		t.Fatalf("missing diagnostic message in %q", out)
	}
}
