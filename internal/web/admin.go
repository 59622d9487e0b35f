// internal/web/admin.go
//
// Administrative interface: dashboard, login stub, and course CRUD.
//
// Context
// -------
// Login accepts any credentials and only records intent in a session
// cookie; RequireAdmin (router.go) consults that cookie when
// admin.enforce_auth is on.  Validation of course input is the
// emptiness check the product always had, expressed through the
// validator tags on courseInput.  Invalid submissions bounce straight
// back to the originating form; no error detail is carried across the
// redirect.

package web

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/coursebook/internal/course"
	"github.com/yanizio/coursebook/internal/metrics"
	"github.com/yanizio/coursebook/internal/session"
)

// AdminHandler serves everything under /admin.
type AdminHandler struct {
	base
}

//
// input validation
//

var validate = validator.New()

// courseInput is the add/edit form payload.  Both fields are required;
// the promoted checkbox is read separately via its "1" sentinel.
type courseInput struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
}

//
// dashboard and login
//

// Dashboard renders the admin landing page.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin/dashboard", map[string]any{
		"PageTitle": "Admin Dashboard",
	})
}

// LoginForm renders the login page.
func (h *AdminHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin/login", map[string]any{
		"PageTitle": "Admin Login",
	})
}

// Login accepts any credentials, stamps the session cookie, and sends
// the caller to the dashboard.  Credential verification never shipped.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	session.LoginAdmin(w, r, r.PostFormValue("username"))
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// Logout clears the session cookie.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session.LogoutAdmin(w, r)
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

//
// course management
//

// ListCourses renders the management table of non-archived courses.
func (h *AdminHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.repo.FindAll(r.Context())
	if err != nil {
		h.serverError(w, "find all courses", err)
		return
	}

	h.render(w, "admin/courses", map[string]any{
		"PageTitle": "Manage Courses",
		"Courses":   courses,
	})
}

// AddCourseForm renders the blank course form.
func (h *AdminHandler) AddCourseForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, "admin/course_form", map[string]any{
		"PageTitle": "Add Course",
		"IsEdit":    false,
	})
}

// AddCourse validates the form, creates a fresh entity, and saves it.
func (h *AdminHandler) AddCourse(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()

	in := courseInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}
	if err := validate.Struct(in); err != nil {
		http.Redirect(w, r, "/admin/courses/add", http.StatusFound)
		return
	}

	promoted := r.PostFormValue("is_promoted") == "1"
	if _, err := h.repo.Save(r.Context(), course.New(in.Title, in.Description, promoted)); err != nil {
		h.serverError(w, "insert course", err)
		return
	}

	metrics.CourseInsertsTotal.Inc()
	http.Redirect(w, r, "/admin/courses", http.StatusFound)
}

// EditCourseForm renders the form pre-filled with one course.
func (h *AdminHandler) EditCourseForm(w http.ResponseWriter, r *http.Request) {
	c := h.lookupOrRedirect(w, r)
	if c == nil {
		return
	}

	h.render(w, "admin/course_form", map[string]any{
		"PageTitle": "Edit Course",
		"IsEdit":    true,
		"Course":    c,
	})
}

// EditCourse validates the form and applies the three copy-on-write
// transforms before saving.  Last write wins; there is no optimistic
// locking on course rows.
func (h *AdminHandler) EditCourse(w http.ResponseWriter, r *http.Request) {
	c := h.lookupOrRedirect(w, r)
	if c == nil {
		return
	}

	_ = r.ParseForm()
	in := courseInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
	}
	if err := validate.Struct(in); err != nil {
		http.Redirect(w, r, fmt.Sprintf("/admin/courses/edit/%d", c.ID()), http.StatusFound)
		return
	}

	updated := c.
		WithTitle(in.Title).
		WithDescription(in.Description).
		WithPromoted(r.PostFormValue("is_promoted") == "1")

	if _, err := h.repo.Save(r.Context(), updated); err != nil {
		h.serverError(w, "update course", err)
		return
	}

	metrics.CourseUpdatesTotal.Inc()
	http.Redirect(w, r, "/admin/courses", http.StatusFound)
}

// ArchiveCourse soft-deletes unconditionally.  The affected-row result
// is ignored on purpose: the redirect target is the same either way.
func (h *AdminHandler) ArchiveCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if ok {
		if _, err := h.repo.Archive(r.Context(), id); err != nil {
			h.serverError(w, "archive course", err)
			return
		}
		metrics.CourseArchivesTotal.Inc()
	}
	http.Redirect(w, r, "/admin/courses", http.StatusFound)
}

// lookupOrRedirect resolves {id} to a live course, or answers the
// course-list redirect and returns nil.
func (h *AdminHandler) lookupOrRedirect(w http.ResponseWriter, r *http.Request) *course.Course {
	id, ok := courseID(r)
	if !ok {
		http.Redirect(w, r, "/admin/courses", http.StatusFound)
		return nil
	}

	c, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		h.serverError(w, "find course", err)
		return nil
	}
	if c == nil {
		http.Redirect(w, r, "/admin/courses", http.StatusFound)
		return nil
	}
	return c
}
