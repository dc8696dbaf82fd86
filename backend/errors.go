package backend

import (
	"encoding/json"
	"io"
	"net/http"
)

// Error is a non-2xx response from the Doc.Roaster API. Message is the
// backend's structured detail when one was parseable, else the HTTP
// status text.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// errorDetail is the backend's structured error payload.
type errorDetail struct {
	Detail string `json:"detail"`
}

// errorFromResponse builds an *Error from a non-2xx response. The body
// is read here; callers must not read it again.
func errorFromResponse(resp *http.Response) *Error {
	msg := http.StatusText(resp.StatusCode)
	if body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize)); err == nil {
		var detail errorDetail
		if err := json.Unmarshal(body, &detail); err == nil && detail.Detail != "" {
			msg = detail.Detail
		}
	}
	return &Error{StatusCode: resp.StatusCode, Message: msg}
}

const maxErrorBodySize = 1 << 20
