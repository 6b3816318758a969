package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrNotFound matches any *APIError with status 404.
var ErrNotFound = errors.New("not found")

// APIError is a failed backend call.
type APIError struct {
	Status  int
	Code    string
	Message string
	Path    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if e.Code != "" {
		return fmt.Sprintf("backend %s returned %d (%s): %s", e.Path, e.Status, e.Code, msg)
	}
	return fmt.Sprintf("backend %s returned %d: %s", e.Path, e.Status, msg)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// parseAPIError reads the error body shapes the backend produces:
//
//	{"success": false, "error": {"code": "...", "message": "..."}}
//	{"detail": {"code": "...", "message": "..."}}
//	{"detail": "..."}
func parseAPIError(status int, path string, body []byte) *APIError {
	e := &APIError{Status: status, Path: path}
	if !gjson.ValidBytes(body) {
		return e
	}

	res := gjson.ParseBytes(body)
	switch {
	case res.Get("error.message").Exists():
		e.Code = res.Get("error.code").String()
		e.Message = res.Get("error.message").String()
	case res.Get("detail.message").Exists():
		e.Code = res.Get("detail.code").String()
		e.Message = res.Get("detail.message").String()
	case res.Get("detail").Type == gjson.String:
		e.Message = res.Get("detail").String()
	case res.Get("message").Type == gjson.String:
		e.Message = res.Get("message").String()
	}
	return e
}
