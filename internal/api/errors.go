package api

import (
	"errors"
	"fmt"
)

// Kind buckets every failure the API layer can produce.
type Kind int

const (
	// KindNetwork means no response at all: DNS, refused connection, timeout.
	KindNetwork Kind = iota + 1
	// KindAuth is an HTTP 401: the session is expired or the token invalid.
	KindAuth
	// KindForbidden is an HTTP 403.
	KindForbidden
	// KindNotFound is an HTTP 404.
	KindNotFound
	// KindValidation is an HTTP 422 or a client-side payload rejection.
	KindValidation
	// KindServer is any HTTP 5xx.
	KindServer
	// KindHTTP is any other non-2xx response.
	KindHTTP
)

// Error is the uniform failure value every client method returns. Methods
// never panic; a call yields either data or one of these.
type Error struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	}
	return e.Message
}

// KindOf extracts the failure kind, or zero for non-API errors.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return 0
}

// IsAuthFailure reports whether err is an authentication or authorization
// failure.
func IsAuthFailure(err error) bool {
	k := KindOf(err)
	return k == KindAuth || k == KindForbidden
}
