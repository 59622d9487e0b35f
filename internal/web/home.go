// internal/web/home.go
//
// Public home page: promoted courses only.

package web

import (
	"net/http"
)

// HomeHandler renders the landing page.
type HomeHandler struct {
	base
}

// Home fetches the promoted courses and renders the home view.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	promoted, err := h.repo.FindPromoted(r.Context())
	if err != nil {
		h.serverError(w, "find promoted courses", err)
		return
	}

	h.render(w, "home", map[string]any{
		"PageTitle":       "Training Courses - Home",
		"PromotedCourses": promoted,
	})
}
