// Package session holds the client-side authentication state for the
// Doc.Roaster console: who is logged in, with which role, and the bearer
// token attached to backend calls. One Session exists per browser,
// keyed by the session-cookie ID, and lives until an explicit logout.
package session

// Role is the authorization level of a logged-in visitor.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// RoleFromSuperuser derives the console role from the backend's
// is_superuser flag on /users/me.
func RoleFromSuperuser(isSuperuser bool) Role {
	if isSuperuser {
		return RoleAdmin
	}
	return RoleUser
}

// Session is the persisted per-browser authentication record. The JSON
// field names are a contract: other code reads session state under
// exactly these keys.
type Session struct {
	LoggedIn    bool   `json:"userLoggedIn"`
	Email       string `json:"userEmail,omitempty"`
	Provider    string `json:"userProvider,omitempty"`
	Role        Role   `json:"userType,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
}

// Valid reports whether the session satisfies the store invariant:
// a logged-in session must carry a token and a role. Callers must not
// Put a logged-in session that fails this check.
func (s Session) Valid() bool {
	if !s.LoggedIn {
		return true
	}
	return s.AccessToken != "" && (s.Role == RoleUser || s.Role == RoleAdmin)
}

// IsAdmin reports whether the session belongs to a logged-in admin.
func (s Session) IsAdmin() bool {
	return s.LoggedIn && s.Role == RoleAdmin
}

// Store abstracts session persistence so that sessions can live in
// memory (tests, ephemeral runs) or in durable storage (default).
//
// Sessions never expire on their own; Delete is the only way a session
// ends. A backend-side token expiry is therefore not reflected here —
// the console keeps believing it is logged in until the next backend
// call fails.
type Store interface {
	// Get retrieves a session by ID. The second result is false when
	// no session exists under the ID; that is a normal read, not an
	// error.
	Get(id string) (Session, bool)
	// Put creates or replaces the session under the ID as one unit.
	Put(id string, s Session)
	// Delete removes the session. Deleting a missing ID is a no-op.
	Delete(id string)
}
