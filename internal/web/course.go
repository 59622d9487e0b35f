// internal/web/course.go
//
// Public course pages: listing, search, and registration.
//
// Context
// -------
// Registration is intentionally not persisted; the original product
// never modelled it as an entity.  The submit handler looks the course
// up (so dead links bounce back to the list), counts the submission,
// and redirects to the static confirmation page no matter what the
// visitor typed into the form.

package web

import (
	"net/http"

	"github.com/yanizio/coursebook/internal/course"
	"github.com/yanizio/coursebook/internal/metrics"
)

// CourseHandler serves the visitor-facing course pages.
type CourseHandler struct {
	base
}

// List renders every non-archived course.
func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	courses, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.serverError(w, "find all courses", err)
		return
	}

	h.render(w, "courses", map[string]any{
		"PageTitle": "All Training Courses",
		"Courses":   courses,
	})
}

// SearchForm renders the empty search page.
func (h *CourseHandler) SearchForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "search", map[string]any{
		"PageTitle": "Search Training Courses",
	})
}

// Search runs the substring query.  An empty term never reaches the
// repository; it would match every row, so the handler short-circuits
// to an empty result set instead.
func (h *CourseHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	var courses []course.Course
	if term != "" {
		var err error
		courses, err = h.repo.FindBySearchTerm(r.Context(), term)
		if err != nil {
			h.serverError(w, "search courses", err)
			return
		}
	}

	h.render(w, "search", map[string]any{
		"PageTitle":  "Search Training Courses",
		"SearchTerm": term,
		"Courses":    courses,
	})
}

// RegistrationForm renders the sign-up page for one course, bouncing
// unknown identities back to the course list.
func (h *CourseHandler) RegistrationForm(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if !ok {
		http.Redirect(w, r, "/courses", http.StatusFound)
		return
	}

	c, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "find course", err)
		return
	}
	if c == nil {
		http.Redirect(w, r, "/courses", http.StatusFound)
		return
	}

	h.render(w, "register", map[string]any{
		"PageTitle": "Register for Course",
		"Course":    c,
	})
}

// Register accepts the form post.  Nothing is stored; see the header
// comment.
func (h *CourseHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if !ok {
		http.Redirect(w, r, "/courses", http.StatusFound)
		return
	}

	c, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "find course", err)
		return
	}
	if c == nil {
		http.Redirect(w, r, "/courses", http.StatusFound)
		return
	}

	metrics.RegistrationsTotal.Inc()
	http.Redirect(w, r, "/register/confirmation", http.StatusFound)
}

// Confirmation renders the static thank-you page.
func (h *CourseHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	h.render(w, "confirmation", map[string]any{
		"PageTitle": "Registration Confirmation",
	})
}
