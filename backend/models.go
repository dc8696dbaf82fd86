package backend

import "time"

// Token is returned from POST /auth/login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// User is a Doc.Roaster account record. The console renders these
// fields as-is and never validates or derives anything from them
// beyond mapping is_superuser to a console role.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// CreateUserRequest is the JSON body for POST /users/.
type CreateUserRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FullName    string `json:"full_name,omitempty"`
	IsActive    bool   `json:"is_active"`
	IsSuperuser bool   `json:"is_superuser"`
}

// UpdateUserRequest is the JSON body for PUT /users/{id} and
// PUT /users/me. Nil fields are omitted and left unchanged server-side.
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	FullName    *string `json:"full_name,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

// Document is a Doc.Roaster document record, passed through untouched.
type Document struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Filename  string     `json:"filename"`
	Summary   string     `json:"summary,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
	OwnerID   string     `json:"owner_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// UpdateDocumentRequest is the JSON body for PUT /documents/{id}.
type UpdateDocumentRequest struct {
	Title   *string  `json:"title,omitempty"`
	Summary *string  `json:"summary,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// ChatRequest is the JSON body for POST /chat/.
type ChatRequest struct {
	Message     string   `json:"message"`
	DocumentIDs []string `json:"document_ids"`
}

// ChatResponse is returned from POST /chat/.
type ChatResponse struct {
	Response string `json:"response"`
}
