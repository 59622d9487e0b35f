// internal/view/render_test.go
//
// Unit-tests for the view engine against a throwaway template tree.
//
// Run: go test ./internal/view -v

package view

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeTree lays out a minimal templates directory under t.TempDir().
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestRenderWithLayoutPartial(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"layout/header.html": `{{ define "header" }}<h1>{{ .PageTitle }}</h1>{{ end }}`,
		"home.html":          `{{ template "header" . }}<p>body</p>`,
	})

	html, err := New(dir).RenderToString("home", map[string]any{"PageTitle": "Hello"})
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if !strings.Contains(string(html), "<h1>Hello</h1>") {
		t.Fatalf("partial not rendered: %s", html)
	}
}

func TestRenderSubdirectoryPage(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"admin/courses.html": `<ul>{{ range .Courses }}<li>{{ . }}</li>{{ end }}</ul>`,
	})

	html, err := New(dir).RenderToString("admin/courses", map[string]any{
		"Courses": []string{"PHP Basics"},
	})
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	if !strings.Contains(string(html), "<li>PHP Basics</li>") {
		t.Fatalf("unexpected output: %s", html)
	}
}

func TestRenderMissingTemplate(t *testing.T) {
	dir := writeTree(t, map[string]string{})

	if _, err := New(dir).RenderToString("nope", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestDateHelpers(t *testing.T) {
	ts := time.Date(2024, 6, 7, 9, 30, 0, 0, time.UTC)

	if got := dateFmt(ts); got != "Jun 7, 2024" {
		t.Fatalf("dateFmt = %q", got)
	}
	if got := datetimeFmt(&ts); got != "Jun 7, 2024 09:30" {
		t.Fatalf("datetimeFmt = %q", got)
	}
	if got := dateFmt((*time.Time)(nil)); got != "" {
		t.Fatalf("nil pointer should render empty, got %q", got)
	}
}
