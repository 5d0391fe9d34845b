package utils

import (
	"encoding/json"
	"net/http"
)

type M map[string]any

// RespondWithJSON sends a JSON response with the given status code.
func RespondWithJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// RespondWithError sends a {"message": ...} error body.
func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"message": msg})
}

// RespondWithErrorDetail optionally attaches the underlying error to the
// body; the caller gates detail on its environment so production responses
// stay opaque.
func RespondWithErrorDetail(w http.ResponseWriter, code int, msg string, err error, includeDetail bool) {
	body := M{"message": msg}
	if err != nil && includeDetail {
		body["error"] = err.Error()
	}
	RespondWithJSON(w, code, body)
}
