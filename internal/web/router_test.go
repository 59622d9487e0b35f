// internal/web/router_test.go
//
// Handler tests exercising the full chain: chi router → middleware →
// handlers → sqlmock-backed repository → template renderer.
//
// Workflow / Structure
// --------------------
// newTestSite builds a router over a sqlmock database and a minimal
// template tree in t.TempDir(), so every test drives real HTTP through
// httptest and asserts on status, Location, and rendered bodies.
//
// Run: go test ./internal/web -v

package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"

	"github.com/yanizio/coursebook/internal/course"
	"github.com/yanizio/coursebook/internal/view"
)

const allCols = "id, title, description, is_promoted, is_archived, created_at, updated_at"

var templates = map[string]string{
	"layout/header.html":     `{{ define "header" }}<title>{{ .PageTitle }}</title>{{ end }}`,
	"home.html":              `{{ template "header" . }}{{ range .PromotedCourses }}<h2>{{ .Title }}</h2>{{ end }}`,
	"courses.html":           `{{ template "header" . }}{{ range .Courses }}<h2>{{ .Title }}</h2>{{ end }}`,
	"search.html":            `{{ template "header" . }}{{ if .SearchTerm }}{{ range .Courses }}<h2>{{ .Title }}</h2>{{ end }}{{ end }}`,
	"register.html":          `{{ template "header" . }}<form>{{ .Course.Title }}</form>`,
	"confirmation.html":      `{{ template "header" . }}<p>Thank you</p>`,
	"admin/dashboard.html":   `{{ template "header" . }}<p>dashboard</p>`,
	"admin/login.html":       `{{ template "header" . }}<form>login</form>`,
	"admin/courses.html":     `{{ template "header" . }}{{ range .Courses }}<td>{{ .Title }}</td>{{ end }}`,
	"admin/course_form.html": `{{ template "header" . }}{{ if .IsEdit }}<form>{{ .Course.Title }}</form>{{ else }}<form>new</form>{{ end }}`,
}

func newTestSite(t *testing.T, opts Options) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	dir := t.TempDir()
	for name, body := range templates {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write template: %v", err)
		}
	}

	repo := course.NewRepository(sqlx.NewDb(db, "sqlmock"))
	return NewRouter(view.NewUncached(dir), repo, opts), mock
}

func courseRows(titles ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "description", "is_promoted", "is_archived",
		"created_at", "updated_at",
	})
	for i, title := range titles {
		rows.AddRow(int64(i+1), title, "About "+title+".", false, false,
			"2024-06-07 10:00:00", nil)
	}
	return rows
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func postForm(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func wantRedirect(t *testing.T, rr *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rr.Code)
	}
	if got := rr.Header().Get("Location"); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}

//
// public site
//

func TestHome_PromotedOnly(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE is_promoted = 1 AND is_archived = 0 ORDER BY title ASC`,
	)).WillReturnRows(courseRows("Promoted course"))

	rr := get(t, h, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Promoted course") {
		t.Fatalf("promoted course missing from body: %s", rr.Body.String())
	}
}

func TestListCourses(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE is_archived = 0 ORDER BY title ASC`,
	)).WillReturnRows(courseRows("JavaScript 101", "PHP Basics"))

	rr := get(t, h, "/courses")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "PHP Basics") || !strings.Contains(body, "JavaScript 101") {
		t.Fatalf("courses missing: %s", body)
	}
}

func TestSearch_FiltersByTerm(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE (title LIKE ? OR description LIKE ?) AND is_archived = 0 ORDER BY title ASC`,
	)).
		WithArgs("%PHP%", "%PHP%").
		WillReturnRows(courseRows("PHP Basics"))

	rr := get(t, h, "/search/results?q=PHP")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "PHP Basics") {
		t.Fatalf("hit missing: %s", body)
	}
	if strings.Contains(body, "JavaScript 101") {
		t.Fatalf("miss leaked into results: %s", body)
	}
}

func TestSearch_EmptyTermSkipsStorage(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	// No SQL expectations: an empty term must never reach the database.
	rr := get(t, h, "/search/results?q=")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}

func TestRegistrationForm_MissingCourse(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE id = ? AND is_archived = 0`,
	)).
		WithArgs(int64(42)).
		WillReturnRows(courseRows())

	wantRedirect(t, get(t, h, "/register/42"), "/courses")
}

func TestRegister_FoundCourse(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE id = ? AND is_archived = 0`,
	)).
		WithArgs(int64(1)).
		WillReturnRows(courseRows("PHP Basics"))

	rr := postForm(t, h, "/register/1", url.Values{"name": {"Sam"}, "email": {"sam@example.com"}})
	wantRedirect(t, rr, "/register/confirmation")
}

func TestConfirmationPage(t *testing.T) {
	h, _ := newTestSite(t, Options{})

	rr := get(t, h, "/register/confirmation")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "Thank you") {
		t.Fatalf("confirmation not rendered: %d %s", rr.Code, rr.Body.String())
	}
}

//
// admin
//

func TestAdminLogin_AlwaysRedirects(t *testing.T) {
	h, _ := newTestSite(t, Options{})

	rr := postForm(t, h, "/admin/login", url.Values{"username": {"root"}, "password": {"whatever"}})
	wantRedirect(t, rr, "/admin")

	if len(rr.Result().Cookies()) == 0 {
		t.Fatalf("login must set the session cookie")
	}
}

func TestAdminAddCourse_EmptyTitleBouncesBack(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	rr := postForm(t, h, "/admin/courses/add", url.Values{
		"title":       {""},
		"description": {"Something."},
	})
	wantRedirect(t, rr, "/admin/courses/add")

	// No INSERT may have reached the database.
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected SQL: %v", err)
	}
}

func TestAdminAddCourse_Valid(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO courses (title, description, is_promoted, is_archived, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
	)).
		WithArgs("Go Basics", "Start here.", true, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(8, 1))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE id = ? AND is_archived = 0`,
	)).
		WithArgs(int64(8)).
		WillReturnRows(courseRows("Go Basics"))

	rr := postForm(t, h, "/admin/courses/add", url.Values{
		"title":       {"Go Basics"},
		"description": {"Start here."},
		"is_promoted": {"1"},
	})
	wantRedirect(t, rr, "/admin/courses")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAdminEditCourse_Valid(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE id = ? AND is_archived = 0`,
	)).
		WithArgs(int64(1)).
		WillReturnRows(courseRows("Old title"))

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE courses SET title = ?, description = ?, is_promoted = ?, is_archived = ?, created_at = ?, updated_at = ? WHERE id = ?`,
	)).
		WithArgs("New title", "New text.", false, false, sqlmock.AnyArg(), sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE id = ? AND is_archived = 0`,
	)).
		WithArgs(int64(1)).
		WillReturnRows(courseRows("New title"))

	rr := postForm(t, h, "/admin/courses/edit/1", url.Values{
		"title":       {"New title"},
		"description": {"New text."},
	})
	wantRedirect(t, rr, "/admin/courses")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

func TestAdminEditCourse_MissingCourse(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE id = ? AND is_archived = 0`,
	)).
		WithArgs(int64(9)).
		WillReturnRows(courseRows())

	wantRedirect(t, get(t, h, "/admin/courses/edit/9"), "/admin/courses")
}

func TestAdminArchiveCourse(t *testing.T) {
	h, mock := newTestSite(t, Options{})

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE courses SET is_archived = 1, updated_at = NOW() WHERE id = ?`,
	)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := postForm(t, h, "/admin/courses/archive/5", url.Values{})
	wantRedirect(t, rr, "/admin/courses")

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet SQL expectations: %v", err)
	}
}

//
// auth gate
//

func TestRequireAdmin_Enforced(t *testing.T) {
	h, _ := newTestSite(t, Options{EnforceAuth: true})

	wantRedirect(t, get(t, h, "/admin/courses"), "/admin/login")
}

func TestRequireAdmin_LoginStaysReachable(t *testing.T) {
	h, _ := newTestSite(t, Options{EnforceAuth: true})

	rr := get(t, h, "/admin/login")
	if rr.Code != http.StatusOK {
		t.Fatalf("login page blocked by its own gate: %d", rr.Code)
	}
}

func TestRequireAdmin_CookieAdmits(t *testing.T) {
	h, mock := newTestSite(t, Options{EnforceAuth: true})

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT `+allCols+` FROM courses WHERE is_archived = 0 ORDER BY title ASC`,
	)).WillReturnRows(courseRows("PHP Basics"))

	login := postForm(t, h, "/admin/login", url.Values{"username": {"root"}})
	cookie := login.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/admin/courses", nil)
	req.AddCookie(cookie)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("cookie-bearing request rejected: %d", rr.Code)
	}
}
