package types

import (
	"encoding/json"
	"net/http"
)

// GenerationResponse is returned on a successful generation.
// IPFSHash and IPFSURL are null when publishing was skipped or failed.
type GenerationResponse struct {
	Success   bool    `json:"success"`
	ImageData string  `json:"imageData"`
	IPFSHash  *string `json:"ipfsHash"`
	IPFSURL   *string `json:"ipfsUrl"`
	TokenID   TokenID `json:"tokenId"`
	Prompt    string  `json:"prompt"`
}

// ErrorResponse is returned for every failed generation.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HealthResponse is the fixed body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	API     string `json:"api"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteError writes a failure response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Success: false, Error: message})
}
