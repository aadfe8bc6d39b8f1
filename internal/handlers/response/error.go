package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"gitlab.com/examproctor-2025.net/internal/core/ports/primary"
	"gitlab.com/examproctor-2025.net/internal/static/errs"
)

type ErrorMessage struct {
	Message    string `json:"error"`
	StatusCode int    `json:"status_code"`
}

var statusByError = []struct {
	err    error
	status int
}{
	{errs.ErrSessionNotFound, http.StatusNotFound},
	{errs.ErrQuestionNotFound, http.StatusNotFound},
	{errs.ErrAlreadySubmitted, http.StatusForbidden},
	{errs.ErrTimeExpired, http.StatusForbidden},
	{errs.ErrNotStarted, http.StatusBadRequest},
	{errs.ErrInvalidInput, http.StatusBadRequest},
	{errs.ErrUnsupportedLanguage, http.StatusBadRequest},
	{errs.ErrNotCodingQuestion, http.StatusBadRequest},
	{errs.ErrAlreadyRegistered, http.StatusConflict},
	{errs.ErrUnauthorized, http.StatusUnauthorized},
	{errs.ErrTokenInvalid, http.StatusUnauthorized},
}

// FromError maps a service error to the status and message sent to clients.
// Unknown errors become a 500 without leaking their text.
func FromError(err error) ErrorMessage {
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return ErrorMessage{Message: m.err.Error(), StatusCode: m.status}
		}
	}
	return ErrorMessage{Message: "server error", StatusCode: http.StatusInternalServerError}
}

func WriteError(w http.ResponseWriter, err ErrorMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	_ = json.NewEncoder(w).Encode(err)
}

// WriteServiceError logs server-side failures and writes the mapped error
func WriteServiceError(w http.ResponseWriter, logger primary.Logger, op string, err error) {
	msg := FromError(err)
	if msg.StatusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", "op", op, "error", err)
	} else {
		logger.Debug("Request rejected", "op", op, "status", msg.StatusCode, "error", err)
	}
	WriteError(w, msg)
}

func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, data)
}

func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, ErrorMessage{Message: message, StatusCode: http.StatusBadRequest})
}
