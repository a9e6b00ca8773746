package handler

import (
	"net/http"
)

// HealthResponse is the body served by the health endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health handles GET /health requests.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}
