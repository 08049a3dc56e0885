// Package httputil holds the response writers shared by the HTTP handlers.
package httputil

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
)

// ErrorBody is the JSON shape of every error response. Line is the 1-based
// input line for LAS parse failures and omitted otherwise.
type ErrorBody struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
}

// WriteJSON writes data as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode json response: %v", err)
	}
}

// WriteJSONOK writes data as JSON with 200 OK.
func WriteJSONOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteJSONError writes an ErrorBody without a line number.
func WriteJSONError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorBody{Error: msg})
}

// WriteJSONErrorAt writes an ErrorBody that points at an input line.
func WriteJSONErrorAt(w http.ResponseWriter, status int, msg string, line int) {
	WriteJSON(w, status, ErrorBody{Error: msg, Line: line})
}

// WriteBody streams body with the given content type. An optional
// filename turns the response into an attachment.
func WriteBody(w http.ResponseWriter, contentType, filename string, body io.Reader) {
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	}
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		log.Printf("failed to write %s response: %v", contentType, err)
	}
}

func MethodNotAllowed(w http.ResponseWriter) {
	WriteJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func BadRequest(w http.ResponseWriter, msg string) {
	WriteJSONError(w, http.StatusBadRequest, msg)
}

func NotFound(w http.ResponseWriter, msg string) {
	WriteJSONError(w, http.StatusNotFound, msg)
}

// RequestTooLarge writes 413 for bodies over the upload limit.
func RequestTooLarge(w http.ResponseWriter, msg string) {
	WriteJSONError(w, http.StatusRequestEntityTooLarge, msg)
}

// UnprocessableEntity writes 422 for well-formed requests whose LAS content
// cannot be parsed.
func UnprocessableEntity(w http.ResponseWriter, msg string, line int) {
	WriteJSONErrorAt(w, http.StatusUnprocessableEntity, msg, line)
}

func InternalServerError(w http.ResponseWriter, msg string) {
	WriteJSONError(w, http.StatusInternalServerError, msg)
}
