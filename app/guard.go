package app

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/docroaster/console/session"
)

type contextKey int

const sessionKey contextKey = iota

const sessionCookieName = "docroaster_session"

// Sessions have no server-side expiry; the cookie lifetime only mirrors
// the durability of the state it points at.
const sessionCookieMaxAge = 365 * 24 * time.Hour

// Decision is the outcome of one guard evaluation. A guard runs exactly
// once per request, against a single session snapshot; it never
// re-checks while the screen is being served.
type Decision int

const (
	// Admitted lets the wrapped screen render.
	Admitted Decision = iota
	// RedirectLogin sends the visitor to the login screen.
	RedirectLogin
	// RedirectHome sends a logged-in but under-privileged visitor to
	// the home screen. Distinguishes "needs auth" from "needs admin".
	RedirectHome
)

// DecideUser is the plain-user admission predicate: any logged-in
// session passes.
func DecideUser(s session.Session) Decision {
	if !s.LoggedIn {
		return RedirectLogin
	}
	return Admitted
}

// DecideAdmin is the admin admission predicate: the session must be
// logged in AND carry the admin role.
func DecideAdmin(s session.Session) Decision {
	if !s.LoggedIn {
		return RedirectLogin
	}
	if s.Role != session.RoleAdmin {
		return RedirectHome
	}
	return Admitted
}

// RequireUser gates a route on the plain-user predicate. The session
// store is read once; the snapshot is placed on the request context for
// the screen handler.
func (a *App) RequireUser(next http.Handler) http.Handler {
	return a.guard(DecideUser, next)
}

// RequireAdmin gates a route on the admin predicate.
func (a *App) RequireAdmin(next http.Handler) http.Handler {
	return a.guard(DecideAdmin, next)
}

func (a *App) guard(decide func(session.Session) Decision, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := a.sessionFromRequest(r)
		switch decide(sess) {
		case RedirectLogin:
			http.Redirect(w, r, "/login", http.StatusSeeOther)
		case RedirectHome:
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	})
}

// sessionFromRequest resolves the session cookie against the store.
// A missing or unknown cookie reads as a logged-out session.
func (a *App) sessionFromRequest(r *http.Request) session.Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return session.Session{}
	}
	sess, ok := a.sessions.Get(cookie.Value)
	if !ok {
		return session.Session{}
	}
	return sess
}

func sessionFromContext(ctx context.Context) session.Session {
	sess, _ := ctx.Value(sessionKey).(session.Session)
	return sess
}

func writeSessionCookie(w http.ResponseWriter, r *http.Request, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sessionCookieMaxAge),
	})
}

func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestIsSecure(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func requestIsSecure(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	if strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		return true
	}
	return strings.Contains(strings.ToLower(r.Header.Get("Forwarded")), "proto=https")
}
