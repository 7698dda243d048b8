package utils

import (
	"encoding/json"
	"net/http"
)

// Payload is the envelope every JSON response except login is wrapped in.
type Payload struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// JSONResponse sends a JSON response with given status, success flag, and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	WriteJSON(w, status, payload)
}

func Success(w http.ResponseWriter, status int, message string, data any) {
	JSONResponse(w, status, Payload{Success: true, Message: message, Data: data})
}

func Failure(w http.ResponseWriter, status int, message string) {
	JSONResponse(w, status, Payload{Success: false, Message: message})
}

// WriteJSON encodes body without the envelope.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
