package rest

import (
	"errors"
	"fmt"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrBusiness matches any envelope-level failure (code != 200).
	ErrBusiness = errors.New("business error")

	// ErrSessionInvalid matches the envelope-level 401: the backend's way
	// of saying the token is stale. The pipeline clears the session and
	// redirects to login when it sees this.
	ErrSessionInvalid = errors.New("session invalid")

	// ErrTransport matches HTTP/network-level failures: non-2xx status,
	// no response, or request construction failure.
	ErrTransport = errors.New("transport error")
)

// BusinessError is a failure signaled inside a successful transport
// response via a non-200 envelope code.
type BusinessError struct {
	// Code is the envelope code (e.g. 401 for a stale session).
	Code int
	// Message is the backend's message, or the pipeline default when the
	// backend sent none.
	Message string
}

// Error returns the backend's message.
func (e *BusinessError) Error() string {
	return e.Message
}

// Is supports errors.Is(err, ErrBusiness) and, for envelope code 401,
// errors.Is(err, ErrSessionInvalid).
func (e *BusinessError) Is(target error) bool {
	if target == ErrBusiness {
		return true
	}
	return target == ErrSessionInvalid && e.Code == api.CodeUnauthorized
}

// TransportError is a failure at the HTTP/network level, independent of
// envelope contents. It never triggers session mutation.
type TransportError struct {
	// Status is the HTTP status code, or 0 when no response was received.
	Status int
	// Message is the fixed human-readable text surfaced to the user.
	Message string
	// Err is the underlying error, if any.
	Err error
}

// Error returns the surfaced message.
func (e *TransportError) Error() string {
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is supports errors.Is(err, ErrTransport).
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Default user-facing texts.
const (
	msgNetwork        = "network error, check connection or retry later"
	msgSessionExpired = "login expired, please log in again"
	msgBusinessFailed = "business request failed"
)

// statusMessage maps an HTTP error status to its fixed user-facing text.
func statusMessage(status int) string {
	switch status {
	case 401:
		return "unauthorized, check login status"
	case 403:
		return "forbidden"
	case 404:
		return "resource not found"
	case 500:
		return "internal server error"
	default:
		return fmt.Sprintf("HTTP error %d", status)
	}
}

// buildFailureMessage is the text for requests that never left the client.
func buildFailureMessage(err error) string {
	return fmt.Sprintf("request failed: %v", err)
}
