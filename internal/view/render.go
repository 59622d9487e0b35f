// internal/view/render.go
//
// View engine: template lookup, func-map injection, and an LRU of
// parsed *template.Template sets.
//
// Public helpers
// --------------
//   - Render         – write rendered HTML to an http.ResponseWriter.
//   - RenderToString – return template.HTML (tests, e-mails).
//
// Layout
// ------
// Page templates live under `<dir>/<name>.html`, where name may carry a
// sub-directory (e.g. "admin/courses").  Every file in `<dir>/layout/`
// is parsed into the same set, so pages can invoke shared partials via
// {{ template "header" . }}.
//
// Parsed sets are cached per logical name; NewUncached builds a
// renderer that re-parses on every call, which development and tests
// prefer.

package view

import (
	"bytes"
	"html/template"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/yanizio/coursebook/internal/cache"
)

// Renderer loads and executes page templates from one directory tree.
// Safe for concurrent use.
type Renderer struct {
	dir  string
	skip bool // bypass the parsed-set cache

	mu   sync.Mutex
	sets *cache.LRU
}

// New returns a caching renderer rooted at dir.
func New(dir string) *Renderer {
	return &Renderer{dir: dir, sets: cache.New(128)}
}

// NewUncached returns a renderer that re-parses templates on every
// render.  Slower, but edits show up without a restart.
func NewUncached(dir string) *Renderer {
	r := New(dir)
	r.skip = true
	return r
}

// Render executes the page template for name and streams it to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, err := r.load(name)
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, execName(name), data)
}

// RenderToString executes and returns HTML.  It mirrors Render but
// writes to a buffer, which makes template assertions in tests cheap.
func (r *Renderer) RenderToString(name string, data any) (template.HTML, error) {
	t, err := r.load(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, execName(name), data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// load finds and (if necessary) parses the template set for name.
func (r *Renderer) load(name string) (*template.Template, error) {
	if !r.skip {
		r.mu.Lock()
		if v, ok := r.sets.Get(name); ok {
			r.mu.Unlock()
			return v.(*template.Template), nil
		}
		r.mu.Unlock()
	}

	t := template.New(execName(name)).Funcs(funcMap())

	// Shared partials first, so the page file may override a define.
	layoutPattern := filepath.Join(r.dir, "layout", "*.html")
	if matches, _ := filepath.Glob(layoutPattern); len(matches) > 0 {
		var err error
		if t, err = t.ParseGlob(layoutPattern); err != nil {
			return nil, err
		}
	}

	page := filepath.Join(r.dir, filepath.FromSlash(name)+".html")
	t, err := t.ParseFiles(page)
	if err != nil {
		return nil, err
	}

	if !r.skip {
		r.mu.Lock()
		r.sets.Add(name, t)
		r.mu.Unlock()
	}
	return t, nil
}

// execName maps a logical name to the template ParseFiles registered,
// which is the base file name ("admin/courses" → "courses.html").
func execName(name string) string {
	return filepath.Base(name) + ".html"
}

//
// func-map helpers
//

func funcMap() template.FuncMap {
	return template.FuncMap{
		"dict":     dict,
		"date":     dateFmt,
		"datetime": datetimeFmt,
	}
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}

// dateFmt renders a timestamp as "Jan 2, 2006".  Accepts both
// time.Time and *time.Time so entity accessors drop straight in.
func dateFmt(v any) string {
	if t, ok := normalizeTime(v); ok {
		return t.Format("Jan 2, 2006")
	}
	return ""
}

// datetimeFmt renders a timestamp as "Jan 2, 2006 15:04".
func datetimeFmt(v any) string {
	if t, ok := normalizeTime(v); ok {
		return t.Format("Jan 2, 2006 15:04")
	}
	return ""
}

func normalizeTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}
