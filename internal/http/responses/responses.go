package responses

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every non-2xx reply: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v with the given status. A nil v sends headers only.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, msg)
}

// WriteNotFound and WriteMethodNotAllowed have handler signatures so they can
// back the router's fallbacks.
func WriteNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, "resource not found")
}

func WriteMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}
