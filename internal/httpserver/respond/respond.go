// Package respond writes JSON bodies and the error envelope shared by
// handlers and middlewares.
package respond

import (
	"encoding/json"
	"net/http"
)

// Error codes of the envelope.
const (
	CodeInvalidNonce    = "INVALID_NONCE"
	CodeUnknownAction   = "UNKNOWN_ACTION"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeUnsupportedType = "UNSUPPORTED_TYPE"
	CodeBadRequest      = "BAD_REQUEST"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	Error errorBody `json:"error"`
}

// JSON writes v with status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes {"error":{"code":...,"message":...}} with status.
func Error(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, envelope{Error: errorBody{Code: code, Message: message}})
}
