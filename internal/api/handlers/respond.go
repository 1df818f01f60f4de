package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avraam311/bg-remover/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func OK(w http.ResponseWriter, payload any) {
	writeJSON(w, http.StatusOK, payload)
}

// Fail writes a single-message error body: {"error": "..."}.
func Fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// FailDetails is Fail with a diagnostic details string attached.
func FailDetails(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, models.ErrorResponse{Error: message, Details: details})
}

// FailFields writes a field-keyed error body, one message list per
// offending form field.
func FailFields(w http.ResponseWriter, status int, fields models.FieldErrors) {
	writeJSON(w, status, fields)
}
