package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// MsgResponse is the {"msg": ...} shape used by workflow endpoints.
type MsgResponse struct {
	Msg string `json:"msg"`
}

// respondJSON writes v as the JSON response body.
func respondJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondMsg sends a message response with the given status code.
func respondMsg(w http.ResponseWriter, message string, statusCode int) {
	respondJSON(w, statusCode, MsgResponse{Msg: message})
}
