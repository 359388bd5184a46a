// Package handler provides the HTTP handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Divyansh670/FeedbackHub/internal/middleware"
	"github.com/Divyansh670/FeedbackHub/internal/model"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeAPIErrorResponse writes an APIError in the unified error format.
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, statusCode, apiErr)
}

// writeUnauthorized writes the standard 401 response for requests whose
// context lacks an authenticated user.
func writeUnauthorized(w http.ResponseWriter) {
	writeAPIErrorResponse(w, http.StatusUnauthorized, &model.APIError{
		Code:     "UNAUTHORIZED",
		Message:  "Authentication required.",
		Category: "auth",
		Action:   "Log in and retry.",
	})
}

// statusForErrorCode maps APIError codes to HTTP status codes.
var statusForErrorCode = map[string]int{
	model.ErrCodeMissingCredentials:  http.StatusBadRequest,
	model.ErrCodeInvalidCredentials:  http.StatusUnauthorized,
	model.ErrCodeUserNotFound:        http.StatusNotFound,
	model.ErrCodeAccessDenied:        http.StatusForbidden,
	model.ErrCodeInvalidRole:         http.StatusBadRequest,
	model.ErrCodeInvalidSentiment:    http.StatusBadRequest,
	model.ErrCodeMissingField:        http.StatusBadRequest,
	model.ErrCodeEmployeeNotManaged:  http.StatusNotFound,
	model.ErrCodeFeedbackNotFound:    http.StatusNotFound,
	model.ErrCodeAlreadyAcknowledged: http.StatusConflict,
}

// handleServiceError converts a service error into an HTTP response.
// Known APIErrors keep their code and category; everything else becomes an
// opaque 500 with the details only in the log.
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		status, ok := statusForErrorCode[apiErr.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		writeAPIErrorResponse(w, status, apiErr)
		return
	}

	slog.Error("unexpected service error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
