package response

import (
	"encoding/json"
	"net/http"
)

// JSON writes an arbitrary payload with the given status code.
func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// Message writes the standard `{"message": ...}` success body.
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, map[string]string{"message": message})
}

// Error writes the standard `{"error": ...}` body. Internal detail stays in
// server logs, never in the message.
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{"error": message})
}
