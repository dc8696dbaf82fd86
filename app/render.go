package app

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/docroaster/console/backend"
	"github.com/docroaster/console/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = parseTemplates()

func parseTemplates() map[string]*template.Template {
	pages := []string{"login", "dashboard", "admin", "profile"}
	ts := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		ts[page] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+page+".html"))
	}
	return ts
}

// nav is the shared header state rendered on every screen.
type nav struct {
	Email    string
	LoggedIn bool
	IsAdmin  bool
}

func navFor(s session.Session) nav {
	return nav{
		Email:    s.Email,
		LoggedIn: s.LoggedIn,
		IsAdmin:  s.IsAdmin(),
	}
}

type loginView struct {
	Nav   nav
	Error string
	Email string
}

type dashboardView struct {
	Nav         nav
	Documents   []backend.Document
	Error       string
	ChatMessage string
	ChatAnswer  string
}

type adminView struct {
	Nav       nav
	Users     []backend.User
	Documents []backend.Document
	Error     string
}

type profileView struct {
	Nav   nav
	User  backend.User
	Error string
	Saved bool
}

// render executes the page template into a buffer first so a template
// error never leaves a half-written response.
func (a *App) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		a.logger.Error("rendering page failed", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
