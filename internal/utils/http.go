package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const (
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"

	// marshalFailureBody is the v3 BaseResponse sent when a response DTO
	// cannot be encoded.
	marshalFailureBody = `{"apiVersion":"v3","statusCode":500,"message":"unable to encode response"}`
)

// WriteJSON encodes data as the JSON response body with statusCode. If data
// cannot be encoded a 500 BaseResponse is written instead and the encoding
// error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		_, _ = WriteBytes(w, []byte(marshalFailureBody), contentTypeJSON, http.StatusInternalServerError)
		return 0, fmt.Errorf("unable to encode response: %w", err)
	}
	return WriteBytes(w, body, contentTypeJSON, statusCode)
}

// WriteBytes writes data with the given content type and status code. An
// empty contentType leaves the header unset.
func WriteBytes(w http.ResponseWriter, data []byte, contentType string, statusCode int) (int, error) {
	if contentType != "" {
		w.Header().Set(contentTypeHeader, contentType)
	}
	w.WriteHeader(statusCode)

	return w.Write(data)
}
