package app

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/docroaster/console/backend"
	"github.com/docroaster/console/internal/util"
)

// AdminConsole renders the user and document management tables.
func (a *App) AdminConsole(w http.ResponseWriter, r *http.Request) {
	a.renderAdmin(w, r, "")
}

// HandleCreateUser creates an account from the admin form.
func (a *App) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	req := backend.CreateUserRequest{
		Email:       util.NormalizeEmail(r.FormValue("email")),
		Password:    r.FormValue("password"),
		FullName:    r.FormValue("full_name"),
		IsActive:    r.FormValue("is_active") == "on",
		IsSuperuser: r.FormValue("is_superuser") == "on",
	}
	if _, err := a.backend.CreateUser(r.Context(), sess.AccessToken, req); err != nil {
		a.logger.Warn("user create failed", "email", req.Email, "error", err)
		a.renderAdmin(w, r, "Creating user failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleUpdateUser applies the admin edit form to one account. Empty
// form fields are left unchanged; the password is only updated when a
// new one was typed.
func (a *App) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	id := chi.URLParam(r, "userID")

	update := backend.UpdateUserRequest{}
	if v := util.NormalizeEmail(r.FormValue("email")); v != "" {
		update.Email = &v
	}
	if v := r.FormValue("full_name"); v != "" {
		update.FullName = &v
	}
	if v := r.FormValue("password"); v != "" {
		update.Password = &v
	}
	isActive := r.FormValue("is_active") == "on"
	update.IsActive = &isActive
	isSuperuser := r.FormValue("is_superuser") == "on"
	update.IsSuperuser = &isSuperuser

	if _, err := a.backend.UpdateUser(r.Context(), sess.AccessToken, id, update); err != nil {
		a.logger.Warn("user update failed", "user_id", id, "error", err)
		a.renderAdmin(w, r, "Updating user failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleDeleteUser removes an account.
func (a *App) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	id := chi.URLParam(r, "userID")

	if err := a.backend.DeleteUser(r.Context(), sess.AccessToken, id); err != nil {
		a.logger.Warn("user delete failed", "user_id", id, "error", err)
		a.renderAdmin(w, r, "Deleting user failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleAdminUpload accepts a file from the admin upload form.
func (a *App) HandleAdminUpload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	file, header, err := r.FormFile("file")
	if err != nil {
		a.renderAdmin(w, r, "Please choose a file to upload.")
		return
	}
	defer file.Close()

	if _, err := a.backend.UploadDocument(r.Context(), sess.AccessToken, header.Filename, file); err != nil {
		a.logger.Warn("document upload failed", "filename", header.Filename, "error", err)
		a.renderAdmin(w, r, "Upload failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleUpdateDocument applies the admin edit form to one document.
// Tags are entered comma-separated.
func (a *App) HandleUpdateDocument(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	id := chi.URLParam(r, "documentID")

	update := backend.UpdateDocumentRequest{}
	if v := r.FormValue("title"); v != "" {
		update.Title = &v
	}
	if v := r.FormValue("summary"); v != "" {
		update.Summary = &v
	}
	if v := r.FormValue("tags"); v != "" {
		update.Tags = splitTags(v)
	}

	if _, err := a.backend.UpdateDocument(r.Context(), sess.AccessToken, id, update); err != nil {
		a.logger.Warn("document update failed", "document_id", id, "error", err)
		a.renderAdmin(w, r, "Updating document failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// HandleAdminDeleteDocument removes a document from the admin screen.
func (a *App) HandleAdminDeleteDocument(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	id := chi.URLParam(r, "documentID")

	if err := a.backend.DeleteDocument(r.Context(), sess.AccessToken, id); err != nil {
		a.logger.Warn("document delete failed", "document_id", id, "error", err)
		a.renderAdmin(w, r, "Deleting document failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// renderAdmin loads both tables and renders the console, optionally
// with an inline failure banner from a preceding form action.
func (a *App) renderAdmin(w http.ResponseWriter, r *http.Request, banner string) {
	sess := sessionFromContext(r.Context())
	view := adminView{Nav: navFor(sess), Error: banner}

	users, err := a.backend.ListUsers(r.Context(), sess.AccessToken)
	if err != nil {
		a.logger.Warn("listing users failed", "error", err)
		if view.Error == "" {
			view.Error = "Could not load users: " + err.Error()
		}
	} else {
		view.Users = users
	}

	docs, err := a.backend.ListDocuments(r.Context(), sess.AccessToken)
	if err != nil {
		a.logger.Warn("listing documents failed", "error", err)
		if view.Error == "" {
			view.Error = "Could not load documents: " + err.Error()
		}
	} else {
		view.Documents = docs
	}

	a.render(w, http.StatusOK, "admin", view)
}

func splitTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
