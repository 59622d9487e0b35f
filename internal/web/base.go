// internal/web/base.go
//
// Shared handler plumbing.
//
// Context
// -------
// Every controller owns the same two collaborators: the view renderer
// and the course repository.  The embedded base struct carries them
// plus the two error paths the whole site uses: render failures and
// storage failures both log through zap and answer a generic 500, per
// the "no local recovery" rule.  Not-found and validation failures are
// handled per-handler as redirects, never as error statuses.

package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/coursebook/internal/course"
	"github.com/yanizio/coursebook/internal/view"
)

// base carries the collaborators shared by all controllers.
type base struct {
	views *view.Renderer
	repo  *course.Repository
}

// render executes a page template, degrading to a 500 on failure.
func (b base) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := b.views.Render(w, name, data); err != nil {
		zap.S().Errorw("render failed", "template", name, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// serverError logs a storage failure and answers a generic 500.
func (b base) serverError(w http.ResponseWriter, op string, err error) {
	zap.S().Errorw("storage failure", "op", op, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError),
		http.StatusInternalServerError)
}

// courseID parses the {id} route parameter.  ok == false covers both a
// missing parameter and a non-numeric one; callers treat either exactly
// like a missing course.
func courseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
