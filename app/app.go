// Package app is the Doc.Roaster web console: a thin presentation
// layer that renders the login, dashboard, admin, and profile screens,
// gates them with session-backed route guards, and forwards every data
// operation to the Doc.Roaster REST backend.
package app

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/docroaster/console/backend"
	"github.com/docroaster/console/session"
)

// App holds the dependencies shared by all screen handlers.
type App struct {
	backend  *backend.Client
	sessions session.Store
	logger   *slog.Logger
}

// Option configures the App.
type Option func(*App)

// WithLogger sets the structured logger for console events. If not
// set, a default JSON logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// New creates the console app on top of a backend client and a session
// store.
func New(client *backend.Client, sessions session.Store, opts ...Option) *App {
	a := &App{
		backend:  client,
		sessions: sessions,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return a
}

// Router returns a chi.Router with all console routes mounted. The
// route table is deliberately small: login, home (user guard), admin
// (admin guard), profile (user guard), and a wildcard fallback to home.
// The POST endpoints are the screens' form actions.
func (a *App) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/login", a.LoginPage)
	r.Post("/login", a.HandleLogin)
	r.Post("/logout", a.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(a.RequireUser)
		r.Get("/", a.Dashboard)
		r.Post("/documents", a.HandleUpload)
		r.Post("/documents/{documentID}/delete", a.HandleDeleteDocument)
		r.Post("/chat", a.HandleChat)
		r.Get("/profile", a.ProfilePage)
		r.Post("/profile", a.HandleProfileSave)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.RequireAdmin)
		r.Get("/admin", a.AdminConsole)
		r.Post("/admin/documents", a.HandleAdminUpload)
		r.Post("/admin/users", a.HandleCreateUser)
		r.Post("/admin/users/{userID}", a.HandleUpdateUser)
		r.Post("/admin/users/{userID}/delete", a.HandleDeleteUser)
		r.Post("/admin/documents/{documentID}", a.HandleUpdateDocument)
		r.Post("/admin/documents/{documentID}/delete", a.HandleAdminDeleteDocument)
	})

	// Any unmatched path falls back to home; the user guard there
	// takes care of unauthenticated visitors.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})

	return r
}
