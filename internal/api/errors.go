package api

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope used by all mutation endpoints. The shape is a
// compatibility contract with the existing admin frontend.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeSuccess writes a 200 success envelope.
func writeSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message})
}

// writeFailure writes a failure envelope with the given status.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeBadRequest writes a 400 failure envelope.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusBadRequest, message)
}

// writeNotFound writes a 404 failure envelope.
func writeNotFound(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusNotFound, message)
}

// writeUnauthorized writes a 401 failure envelope.
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusUnauthorized, message)
}

// writeInternalError writes a 500 failure envelope.
func writeInternalError(w http.ResponseWriter, message string) {
	writeFailure(w, http.StatusInternalServerError, message)
}
