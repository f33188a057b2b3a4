package server

import (
	"net/http"
	"runtime"
	"time"

	"github.com/me/schedsim/internal/scheduler"
)

type healthResponse struct {
	Status       string   `json:"status"`
	Version      string   `json:"version"`
	GoVersion    string   `json:"go_version"`
	Uptime       string   `json:"uptime"`
	Policies     []string `json:"policies"`
	MaxProcesses int      `json:"max_processes"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, healthResponse{
		Status:       "healthy",
		Version:      "0.1.0",
		GoVersion:    runtime.Version(),
		Uptime:       time.Since(s.startTime).Round(time.Second).String(),
		Policies:     scheduler.Names(),
		MaxProcesses: s.config.MaxProcesses,
	})
}
