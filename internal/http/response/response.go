// Package response defines the JSON envelope every API response is wrapped
// in and writes it for handlers that run outside huma (middleware, router
// fallbacks).
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/foldnote/foldnote-server/internal/errors"
)

// Version is the envelope format version reported in the "v" field.
const Version = 1

// ContentType is the media type of enveloped responses.
const ContentType = "application/json; charset=utf-8"

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	V       int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Human-readable error message"`
	Code    string `json:"code,omitempty" doc:"Machine-readable error code"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// OK wraps a successful payload.
func OK(data any) Envelope {
	return Envelope{V: Version, Success: true, Data: data}
}

// Fail wraps an error.
func Fail(code domainerrors.Code, message string, details any) Envelope {
	return Envelope{V: Version, Success: false, Error: message, Code: string(code), Details: details}
}

// JSON writes an envelope with the given status code.
func JSON(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil && logger != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// Error writes the envelope for a coded error with the code's status.
func Error(w http.ResponseWriter, err *domainerrors.Error, logger *slog.Logger) {
	JSON(w, err.HTTPStatus(), Fail(err.Code, err.Message, err.Details), logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.NotFound(message), logger)
}

// MethodNotAllowed writes a 405 Method Not Allowed response.
func MethodNotAllowed(w http.ResponseWriter, logger *slog.Logger) {
	JSON(w, http.StatusMethodNotAllowed, Fail(domainerrors.CodeValidation, "method not allowed", nil), logger)
}

// TooManyRequests writes a 429 Too Many Requests response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.ErrRateLimited.WithMessage(message), logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, domainerrors.Internal(message), logger)
}

// HandleError writes an appropriate response based on the error type.
// Coded errors keep their status; anything else becomes a 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var coded *domainerrors.Error
	if domainerrors.As(err, &coded) {
		Error(w, coded, logger)
		return
	}

	if logger != nil {
		logger.Error("unhandled error", "error", err)
	}
	InternalError(w, "internal server error", logger)
}
