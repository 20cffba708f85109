package gateway

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	// KindNetwork: the request never produced an HTTP response.
	KindNetwork ErrorKind = "network"
	// KindServer: the server answered with a non-2xx status.
	KindServer  ErrorKind = "server"
)

// RequestError is returned by every gateway call that fails. Message carries the
// server's "message" field when it sent one.
type RequestError struct {
	Kind    ErrorKind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string {
	switch {
	case e.Kind == KindNetwork:
		return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("%s: %d %s", e.Op, e.Status, http.StatusText(e.Status))
	}
}

func (e *RequestError) Unwrap() error { return e.Err }

func (e *RequestError) NotFound() bool { return e.Kind == KindServer && e.Status == http.StatusNotFound }

func (e *RequestError) Conflict() bool { return e.Kind == KindServer && e.Status == http.StatusConflict }

func (e *RequestError) Unauthorized() bool {
	return e.Kind == KindServer && e.Status == http.StatusUnauthorized
}

// ServerMessage returns the message the server attached to err, or "".
func ServerMessage(err error) string {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Message
	}
	return ""
}
