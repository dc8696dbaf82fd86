package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docroaster/console/app"
	"github.com/docroaster/console/session"
)

func TestDecideUser(t *testing.T) {
	tests := []struct {
		name string
		s    session.Session
		want app.Decision
	}{
		{"logged in user", session.Session{LoggedIn: true, Role: session.RoleUser, AccessToken: "t"}, app.Admitted},
		{"logged in admin", session.Session{LoggedIn: true, Role: session.RoleAdmin, AccessToken: "t"}, app.Admitted},
		{"empty session", session.Session{}, app.RedirectLogin},
		{"logged out with role", session.Session{Role: session.RoleAdmin}, app.RedirectLogin},
		{"logged out with token", session.Session{AccessToken: "t"}, app.RedirectLogin},
		{"logged out with role and token", session.Session{Role: session.RoleUser, AccessToken: "t"}, app.RedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.DecideUser(tt.s))
		})
	}
}

func TestDecideAdmin(t *testing.T) {
	tests := []struct {
		name string
		s    session.Session
		want app.Decision
	}{
		{"logged in admin", session.Session{LoggedIn: true, Role: session.RoleAdmin, AccessToken: "t"}, app.Admitted},
		// A logged-in non-admin goes home, not to login: the visitor
		// is authenticated, just not privileged.
		{"logged in user", session.Session{LoggedIn: true, Role: session.RoleUser, AccessToken: "t"}, app.RedirectHome},
		{"logged in no role", session.Session{LoggedIn: true, AccessToken: "t"}, app.RedirectHome},
		{"empty session", session.Session{}, app.RedirectLogin},
		{"logged out admin leftovers", session.Session{Role: session.RoleAdmin, AccessToken: "t"}, app.RedirectLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, app.DecideAdmin(tt.s))
		})
	}
}

// Clearing the store always flips both guards back to the login
// redirect, whatever the prior role was.
func TestClearAlwaysRedirectsToLogin(t *testing.T) {
	store := session.NewMemoryStore()
	for _, role := range []session.Role{session.RoleUser, session.RoleAdmin} {
		store.Put("id", session.Session{LoggedIn: true, Role: role, AccessToken: "t"})
		store.Delete("id")

		sess, _ := store.Get("id")
		assert.Equal(t, app.RedirectLogin, app.DecideUser(sess))
		assert.Equal(t, app.RedirectLogin, app.DecideAdmin(sess))
	}
}
