// internal/session/session.go
//
// Admin session cookie.
//
// Context
//   The admin login flow needs a “logged-in” flag that survives between
//   requests.  These helpers set or clear a cookie named
//   “coursebook_admin” holding the submitted username.  The login
//   handler accepts any credentials, so the cookie records intent, not
//   identity; the RequireAdmin middleware in internal/web consults it
//   only when admin.enforce_auth is switched on.
//
//   Replace these helpers with a real session store before enforcement
//   is turned on in production.  All callers rely only on this tiny
//   API, so swapping the implementation is painless.
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"
	"time"
)

const cookieName = "coursebook_admin"

// LoginAdmin sets the admin session cookie for username.
func LoginAdmin(w http.ResponseWriter, r *http.Request, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    username, // TODO: sign once enforcement ships
		Path:     "/admin",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(12 * time.Hour),
	})
}

// LogoutAdmin clears the admin session cookie.
func LogoutAdmin(w http.ResponseWriter, _ *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// CurrentAdmin returns the username stored in the session, if any.
//
// ok == false when the cookie is missing or empty.
func CurrentAdmin(r *http.Request) (username string, ok bool) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}
