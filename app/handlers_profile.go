package app

import (
	"net/http"

	"github.com/docroaster/console/backend"
)

// ProfilePage shows the identity behind the current session, straight
// from the backend.
func (a *App) ProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	view := profileView{Nav: navFor(sess)}

	user, err := a.backend.CurrentUser(r.Context(), sess.AccessToken)
	if err != nil {
		a.logger.Warn("profile load failed", "error", err)
		view.Error = "Could not load profile: " + err.Error()
		a.render(w, http.StatusOK, "profile", view)
		return
	}
	view.User = user
	a.render(w, http.StatusOK, "profile", view)
}

// HandleProfileSave updates the visitor's display name. The session is
// left untouched: email is immutable and the role is not editable here,
// so there is nothing to refresh in the store.
func (a *App) HandleProfileSave(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	view := profileView{Nav: navFor(sess)}

	fullName := r.FormValue("full_name")
	update := backend.UpdateUserRequest{FullName: &fullName}

	user, err := a.backend.UpdateCurrentUser(r.Context(), sess.AccessToken, update)
	if err != nil {
		a.logger.Warn("profile save failed", "error", err)
		view.Error = "Saving profile failed: " + err.Error()
		// Keep the typed name so the visitor can retry.
		view.User.FullName = fullName
		view.User.Email = sess.Email
		a.render(w, http.StatusOK, "profile", view)
		return
	}
	view.User = user
	view.Saved = true
	a.render(w, http.StatusOK, "profile", view)
}
