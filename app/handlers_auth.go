package app

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/docroaster/console/backend"
	"github.com/docroaster/console/internal/util"
	"github.com/docroaster/console/session"
)

// LoginPage renders the login form.
func (a *App) LoginPage(w http.ResponseWriter, r *http.Request) {
	a.render(w, http.StatusOK, "login", loginView{})
}

// HandleLogin runs the two-step login: exchange credentials for a
// token, then resolve the identity behind it. The session is written
// as one unit only after both calls succeeded, so guards never observe
// a partial session.
func (a *App) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := util.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")

	tok, err := a.backend.Login(r.Context(), email, password)
	if err != nil {
		a.logger.Info("login failed", "email", email, "error", err)
		a.render(w, http.StatusUnauthorized, "login", loginView{
			Error: loginErrorMessage(err),
			Email: email,
		})
		return
	}

	user, err := a.backend.CurrentUser(r.Context(), tok.AccessToken)
	if err != nil {
		a.logger.Warn("identity lookup after login failed", "email", email, "error", err)
		a.render(w, http.StatusUnauthorized, "login", loginView{
			Error: loginErrorMessage(err),
			Email: email,
		})
		return
	}

	sess := session.Session{
		LoggedIn:    true,
		Email:       user.Email,
		Role:        session.RoleFromSuperuser(user.IsSuperuser),
		AccessToken: tok.AccessToken,
	}
	// A logged-in session must carry a usable token and role; a backend
	// answering 200 with an empty access_token must not become a
	// stored session the guards would admit.
	if !sess.Valid() {
		a.logger.Warn("login returned unusable credentials", "email", email)
		a.render(w, http.StatusUnauthorized, "login", loginView{
			Error: "Login failed. Please try again.",
			Email: email,
		})
		return
	}

	id := uuid.NewString()
	a.sessions.Put(id, sess)
	writeSessionCookie(w, r, id)

	a.logger.Info("login succeeded", "email", user.Email, "role", sess.Role)
	if sess.Role == session.RoleAdmin {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout clears the session and returns to the login screen. It
// is reachable from every authenticated screen and is deliberately not
// guarded: logging out of an already-dead session is a no-op.
func (a *App) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		a.sessions.Delete(cookie.Value)
	}
	clearSessionCookie(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// loginErrorMessage surfaces the backend's own message for auth
// failures and falls back to a stock message for transport problems.
func loginErrorMessage(err error) string {
	var apiErr *backend.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Login failed. Please try again."
}
