// Package api defines the wire contracts of the SparkHub backend REST API.
//
// Every response body is wrapped in an Envelope whose code field carries the
// business result independently of the HTTP transport status. The types here
// mirror the backend DTOs exactly; they carry no behavior beyond JSON shape
// normalization.
package api

import "encoding/json"

// Business result codes carried in the Envelope code field.
const (
	// CodeOK signals business success; Data holds the payload.
	CodeOK = 200
	// CodeUnauthorized signals a stale or invalid token. The request
	// pipeline treats this as session-invalidating.
	CodeUnauthorized = 401
)

// Envelope is the wrapper around every backend response body.
// Code is the business result; Message is a human-readable description;
// Data is the payload, left raw so callers decode it into the endpoint's
// declared response type only on success.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK reports whether the envelope carries a business success.
func (e *Envelope) OK() bool {
	return e.Code == CodeOK
}
