package handlers

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON error response structure
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ListResponse wraps a collection with its size
type ListResponse struct {
	Items interface{} `json:"items"`
	Count int         `json:"count"`
}

func writeJSON(w http.ResponseWriter, status int, cacheControl string, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if cacheControl != "" {
		w.Header().Set("Cache-Control", cacheControl)
		w.Header().Set("Vary", "Accept-Encoding")
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string, details map[string]interface{}) {
	writeJSON(w, status, "", ErrorResponse{Error: message, Details: details})
}

func writeInternalError(w http.ResponseWriter, message string, err error) {
	writeError(w, http.StatusInternalServerError, message, map[string]interface{}{
		"internal": err.Error(),
	})
}

const (
	// static network data changes only on redeploy
	cacheStatic = "public, max-age=300"
	// live trains refresh every 30 seconds by default
	cacheLive = "public, max-age=15, stale-while-revalidate=10"
	cacheNone = "no-store"
)
