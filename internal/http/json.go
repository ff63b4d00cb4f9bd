package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	apperrors "github.com/openshelf/library-admin/internal/errors"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (client disconnect) can't be recovered from here.
		return
	}
}

// WriteError maps an application error onto a JSON error response.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, statusForError(err), map[string]string{
		"error":   string(apperrors.CodeOf(err)),
		"message": apperrors.UserMessage(err),
	})
}

func statusForError(err error) int {
	switch {
	case apperrors.IsValidation(err):
		return http.StatusBadRequest
	case apperrors.IsUnauthenticated(err):
		return http.StatusUnauthorized
	case apperrors.IsForbidden(err):
		return http.StatusForbidden
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsUpstream(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
