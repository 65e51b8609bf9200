package api

import (
	"encoding/json"
	"net/http"

	apperrors "bibliotec/internal/errors"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// respondError maps service errors onto status codes and JSON bodies.
// Unknown errors become a generic 500 with no internal detail.
func respondError(w http.ResponseWriter, err error) {
	httpErr := apperrors.Map(err)
	respondJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
}

func respondNotFound(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusNotFound, map[string]string{"error": message})
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
