package api

import (
	"net/http"

	"github.com/storefrontapp/storefront-server/internal/http/response"
)

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// handleHealthCheck reports liveness.
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Success(w, healthStatus{Status: "ok", Service: "storefront-server"}, s.logger)
}
