package server

import "net/http"

type endpointInfo struct {
	Path        string   `json:"path"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

type discoveryResponse struct {
	Name        string         `json:"name"`
	Version     string         `json:"version"`
	Description string         `json:"description"`
	Endpoints   []endpointInfo `json:"endpoints"`
}

func (s *Server) handleDiscovery(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, discoveryResponse{
		Name:        "schedsim API",
		Version:     "v1",
		Description: "CPU scheduling simulator: Gantt timelines and turnaround/waiting metrics per policy",
		Endpoints: []endpointInfo{
			{"/api/v1/policies", []string{"GET"}, "List scheduling policies"},
			{"/api/v1/policies/{name}", []string{"GET"}, "Describe one policy; aliases resolve to the canonical name"},
			{"/api/v1/simulations", []string{"POST"}, "Simulate one policy over a process list. ?coalesce=true merges adjacent slices"},
			{"/api/v1/simulations/stream", []string{"POST"}, "Simulate and replay the timeline as Server-Sent Events"},
			{"/api/v1/comparisons", []string{"POST"}, "Simulate several policies over one process list and compare summaries"},
			{"/api/v1/health", []string{"GET"}, "Server health and version"},
		},
	})
}
