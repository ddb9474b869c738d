package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Status    int               `json:"status"`
	Message   string            `json:"message"`
	Timestamp string            `json:"timestamp"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// RenderError writes err as the standard error body. Structured errors keep
// their mapped status and message; anything else becomes a generic 500 so
// internals never leak to the client.
func RenderError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong"

	var e *Error
	if errors.As(err, &e) {
		status = e.HTTPStatusCode()
		message = e.Message
	}

	writeResponse(w, ErrorResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// RenderValidation writes a 400 response carrying per-field messages.
func RenderValidation(w http.ResponseWriter, fieldErrors map[string]string) {
	writeResponse(w, ErrorResponse{
		Status:    http.StatusBadRequest,
		Message:   "Validation failed",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Errors:    fieldErrors,
	})
}

func writeResponse(w http.ResponseWriter, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	json.NewEncoder(w).Encode(resp)
}
