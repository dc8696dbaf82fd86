// Package backend is the single choke point for every call the console
// makes to the Doc.Roaster REST API. It encodes request bodies, attaches
// the bearer token, and translates non-2xx responses into typed errors.
// It does not retry, cache, or rate-limit.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// TokenSource supplies the ambient bearer token for requests that do
// not pass one explicitly. An empty string means "no token"; the
// request then goes out unauthenticated. It exists for callers that
// embed a Client alongside a single long-lived session, such as a CLI
// or a per-user worker; the console's handlers pass each session's
// token explicitly instead.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client calls the Doc.Roaster REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTokenSource sets the ambient token source consulted when a call
// does not carry an explicit token.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// New creates a Client for the API at baseURL. An empty baseURL falls
// back to DefaultBaseURL.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// payload is an encoded request body plus its content type. An empty
// contentType means no Content-Type header is set.
type payload struct {
	contentType string
	body        io.Reader
}

func jsonPayload(v any) (payload, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return payload{}, fmt.Errorf("encoding request body: %w", err)
	}
	return payload{contentType: "application/json", body: bytes.NewReader(data)}, nil
}

func formPayload(values url.Values) payload {
	return payload{
		contentType: "application/x-www-form-urlencoded",
		body:        strings.NewReader(values.Encode()),
	}
}

// filePayload builds a multipart body with the file under the given
// field name. The content type is the multipart boundary type; no JSON
// content-type header is involved.
func filePayload(fieldName, filename string, file io.Reader) (payload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(fieldName, filename)
	if err != nil {
		return payload{}, fmt.Errorf("building multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return payload{}, fmt.Errorf("copying file into multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return payload{}, fmt.Errorf("finalizing multipart body: %w", err)
	}
	return payload{contentType: mw.FormDataContentType(), body: &buf}, nil
}

// do sends one request and decodes the JSON response into out (when out
// is non-nil). Token priority: the explicit token argument wins; else
// the ambient TokenSource is read at call time; else the request is
// unauthenticated.
func (c *Client) do(ctx context.Context, method, path string, p payload, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, p.body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if p.contentType != "" {
		req.Header.Set("Content-Type", p.contentType)
	}
	if token == "" && c.tokens != nil {
		token = c.tokens.Token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// Login exchanges credentials for a bearer token. The backend expects
// form encoding here, not JSON.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	var tok Token
	form := url.Values{"username": {username}, "password": {password}}
	err := c.do(ctx, http.MethodPost, "/auth/login", formPayload(form), "", &tok)
	return tok, err
}

// CurrentUser fetches the identity behind the token.
func (c *Client) CurrentUser(ctx context.Context, token string) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/users/me", payload{}, token, &u)
	return u, err
}

// UpdateCurrentUser updates the logged-in user's own profile.
func (c *Client) UpdateCurrentUser(ctx context.Context, token string, update UpdateUserRequest) (User, error) {
	p, err := jsonPayload(update)
	if err != nil {
		return User{}, err
	}
	var u User
	err = c.do(ctx, http.MethodPut, "/users/me", p, token, &u)
	return u, err
}

// ListUsers lists all users. Admin-only by backend convention.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/users/", payload{}, token, &users)
	return users, err
}

// CreateUser creates a user. Admin-only by backend convention.
func (c *Client) CreateUser(ctx context.Context, token string, req CreateUserRequest) (User, error) {
	p, err := jsonPayload(req)
	if err != nil {
		return User{}, err
	}
	var u User
	err = c.do(ctx, http.MethodPost, "/users/", p, token, &u)
	return u, err
}

// UpdateUser updates a user by id.
func (c *Client) UpdateUser(ctx context.Context, token, id string, update UpdateUserRequest) (User, error) {
	p, err := jsonPayload(update)
	if err != nil {
		return User{}, err
	}
	var u User
	err = c.do(ctx, http.MethodPut, "/users/"+id, p, token, &u)
	return u, err
}

// DeleteUser deletes a user by id.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, payload{}, token, nil)
}

// ListDocuments lists the documents visible to the token's user.
func (c *Client) ListDocuments(ctx context.Context, token string) ([]Document, error) {
	var docs []Document
	err := c.do(ctx, http.MethodGet, "/documents/", payload{}, token, &docs)
	return docs, err
}

// UploadDocument uploads a file as a new document. The body is
// multipart; the backend derives title and filename from the upload.
func (c *Client) UploadDocument(ctx context.Context, token, filename string, file io.Reader) (Document, error) {
	p, err := filePayload("file", filename, file)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	err = c.do(ctx, http.MethodPost, "/documents/", p, token, &doc)
	return doc, err
}

// UpdateDocument updates a document's title, summary, or tags.
func (c *Client) UpdateDocument(ctx context.Context, token, id string, update UpdateDocumentRequest) (Document, error) {
	p, err := jsonPayload(update)
	if err != nil {
		return Document{}, err
	}
	var doc Document
	err = c.do(ctx, http.MethodPut, "/documents/"+id, p, token, &doc)
	return doc, err
}

// DeleteDocument deletes a document by id.
func (c *Client) DeleteDocument(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/documents/"+id, payload{}, token, nil)
}

// Chat sends a free-text question about the given documents and returns
// the backend's answer.
func (c *Client) Chat(ctx context.Context, token, message string, documentIDs []string) (string, error) {
	if documentIDs == nil {
		documentIDs = []string{}
	}
	p, err := jsonPayload(ChatRequest{Message: message, DocumentIDs: documentIDs})
	if err != nil {
		return "", err
	}
	var resp ChatResponse
	err = c.do(ctx, http.MethodPost, "/chat/", p, token, &resp)
	return resp.Response, err
}
