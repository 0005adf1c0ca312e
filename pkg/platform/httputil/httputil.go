// Package httputil holds the JSON envelope helpers shared by every handler.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "partyhub/pkg/domain-errors"
)

// MaxBodyBytes bounds request bodies accepted by DecodeJSON.
const MaxBodyBytes = 10 << 20

// ErrorResponse is the envelope for every non-2xx answer.
type ErrorResponse struct {
	Error       string                   `json:"error"`
	Description string                   `json:"error_description"`
	Details     []dErrors.FieldViolation `json:"details,omitempty"`
	Debug       string                   `json:"debug,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ErrorOption tweaks how WriteError renders an error.
type ErrorOption func(*errorConfig)

type errorConfig struct {
	debug bool
}

// WithDebug exposes the cause chain of internal errors. Only enabled outside
// production.
func WithDebug(enabled bool) ErrorOption {
	return func(c *errorConfig) {
		c.debug = enabled
	}
}

// WriteError translates an error into the JSON envelope. Errors without a code
// become internal_error and never leak their message to the client.
func WriteError(w http.ResponseWriter, err error, opts ...ErrorOption) {
	cfg := errorConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	resp := ErrorResponse{
		Error:       string(dErrors.CodeInternal),
		Description: "internal server error",
	}
	status := http.StatusInternalServerError

	if de, ok := dErrors.As(err); ok && de.Code != dErrors.CodeInternal {
		status = dErrors.ToHTTPStatus(de.Code)
		resp.Error = string(de.Code)
		resp.Description = de.Message
		resp.Details = de.Violations
	} else if cfg.debug && err != nil {
		resp.Debug = err.Error()
	}

	WriteJSON(w, status, resp)
}

// DecodeJSON decodes a bounded request body into v. Malformed JSON becomes a
// CodeBadRequest error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return dErrors.New(dErrors.CodeBadRequest, "request body too large")
		case errors.Is(err, io.EOF):
			return dErrors.New(dErrors.CodeBadRequest, "request body is required")
		default:
			return dErrors.New(dErrors.CodeBadRequest, "invalid JSON body")
		}
	}
	if dec.More() {
		return dErrors.New(dErrors.CodeBadRequest, "request body must contain a single JSON value")
	}
	return nil
}
