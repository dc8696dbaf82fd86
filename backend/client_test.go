package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docroaster/console/backend"
)

func TestLoginSendsFormEncodedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "user@example.com", r.PostFormValue("username"))
		assert.Equal(t, "user123", r.PostFormValue("password"))

		json.NewEncoder(w).Encode(backend.Token{AccessToken: "tok-1", TokenType: "bearer"})
	}))
	defer srv.Close()

	c := backend.New(srv.URL + "/api/v1")
	tok, err := c.Login(context.Background(), "user@example.com", "user123")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok.AccessToken)
}

func TestErrorCarriesBackendDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "Invalid credentials"}`))
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	_, err := c.Login(context.Background(), "user@example.com", "wrong")
	require.Error(t, err)

	var apiErr *backend.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestErrorFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>gateway exploded</html>"))
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	_, err := c.ListDocuments(context.Background(), "tok")
	require.Error(t, err)

	var apiErr *backend.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestExplicitTokenWinsOverAmbient(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(backend.User{ID: "u1"})
	}))
	defer srv.Close()

	c := backend.New(srv.URL, backend.WithTokenSource(backend.TokenFunc(func() string {
		return "ambient-token"
	})))

	_, err := c.CurrentUser(context.Background(), "explicit-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer explicit-token", gotAuth)
}

func TestAmbientTokenUsedWhenNoneGiven(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]backend.Document{})
	}))
	defer srv.Close()

	c := backend.New(srv.URL, backend.WithTokenSource(backend.TokenFunc(func() string {
		return "ambient-token"
	})))

	_, err := c.ListDocuments(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Bearer ambient-token", gotAuth)
}

func TestNoTokenMeansUnauthenticatedRequest(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]backend.Document{})
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	_, err := c.ListDocuments(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUploadDocumentIsMultipartNotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		assert.True(t, strings.HasPrefix(ct, "multipart/form-data"), "content type %q", ct)
		assert.NotContains(t, ct, "application/json")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "report.pdf", header.Filename)

		json.NewEncoder(w).Encode(backend.Document{ID: "d1", Title: "report.pdf", Filename: "report.pdf"})
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	doc, err := c.UploadDocument(context.Background(), "tok", "report.pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "d1", doc.ID)
}

func TestMalformedSuccessBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not json"))
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	_, err := c.ListUsers(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
}

func TestDeleteIgnoresResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/documents/d1", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	require.NoError(t, c.DeleteDocument(context.Background(), "tok", "d1"))
}

func TestChatRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req backend.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "summarize", req.Message)
		assert.Equal(t, []string{"d1", "d2"}, req.DocumentIDs)

		json.NewEncoder(w).Encode(backend.ChatResponse{Response: "both are about invoices"})
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	answer, err := c.Chat(context.Background(), "tok", "summarize", []string{"d1", "d2"})
	require.NoError(t, err)
	assert.Equal(t, "both are about invoices", answer)
}

func TestChatSendsEmptyDocumentListNotNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.JSONEq(t, `[]`, string(raw["document_ids"]))
		json.NewEncoder(w).Encode(backend.ChatResponse{Response: "ok"})
	}))
	defer srv.Close()

	c := backend.New(srv.URL)
	_, err := c.Chat(context.Background(), "tok", "hello", nil)
	require.NoError(t, err)
}

func TestTransportFailureSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := backend.New(srv.URL)
	_, err := c.ListDocuments(context.Background(), "tok")
	require.Error(t, err)

	var apiErr *backend.Error
	assert.False(t, errors.As(err, &apiErr), "transport failures are not API errors")
}
