package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Dashboard renders the user's document list and chat box.
func (a *App) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	view := dashboardView{Nav: navFor(sess)}

	docs, err := a.backend.ListDocuments(r.Context(), sess.AccessToken)
	if err != nil {
		a.logger.Warn("listing documents failed", "error", err)
		view.Error = "Could not load documents: " + err.Error()
		a.render(w, http.StatusOK, "dashboard", view)
		return
	}
	view.Documents = docs
	a.render(w, http.StatusOK, "dashboard", view)
}

// HandleUpload accepts a file from the upload form and forwards it to
// the backend as a multipart request.
func (a *App) HandleUpload(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	file, header, err := r.FormFile("file")
	if err != nil {
		a.renderDashboardError(w, r, "Please choose a file to upload.")
		return
	}
	defer file.Close()

	if _, err := a.backend.UploadDocument(r.Context(), sess.AccessToken, header.Filename, file); err != nil {
		a.logger.Warn("document upload failed", "filename", header.Filename, "error", err)
		a.renderDashboardError(w, r, "Upload failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleDeleteDocument removes one document and returns to the list.
func (a *App) HandleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	id := chi.URLParam(r, "documentID")

	if err := a.backend.DeleteDocument(r.Context(), sess.AccessToken, id); err != nil {
		a.logger.Warn("document delete failed", "document_id", id, "error", err)
		a.renderDashboardError(w, r, "Delete failed: "+err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleChat asks the backend a question about the selected documents
// and re-renders the dashboard with the answer. The typed message is
// kept in the form so a failed call can be retried as-is.
func (a *App) HandleChat(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		a.renderDashboardError(w, r, "Invalid form submission.")
		return
	}
	message := r.PostFormValue("message")
	documentIDs := r.PostForm["document_ids"]

	view := dashboardView{Nav: navFor(sess), ChatMessage: message}

	docs, err := a.backend.ListDocuments(r.Context(), sess.AccessToken)
	if err == nil {
		view.Documents = docs
	}

	answer, err := a.backend.Chat(r.Context(), sess.AccessToken, message, documentIDs)
	if err != nil {
		a.logger.Warn("chat failed", "error", err)
		view.Error = "Query failed: " + err.Error()
		a.render(w, http.StatusOK, "dashboard", view)
		return
	}
	view.ChatAnswer = answer
	a.render(w, http.StatusOK, "dashboard", view)
}

// renderDashboardError re-renders the dashboard with an inline banner,
// keeping the document list visible so the visitor can retry.
func (a *App) renderDashboardError(w http.ResponseWriter, r *http.Request, msg string) {
	sess := sessionFromContext(r.Context())
	view := dashboardView{Nav: navFor(sess), Error: msg}
	if docs, err := a.backend.ListDocuments(r.Context(), sess.AccessToken); err == nil {
		view.Documents = docs
	}
	a.render(w, http.StatusOK, "dashboard", view)
}
