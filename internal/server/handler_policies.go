package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/me/schedsim/internal/scheduler"
	"github.com/me/schedsim/pkg/model"
)

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	respondOK(w, reqID, scheduler.Policies())
}

func (s *Server) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())
	name := chi.URLParam(r, "name")

	info, ok := scheduler.Lookup(name)
	if !ok {
		respondError(w, reqID, http.StatusNotFound, model.NewNotFoundError("policy", name))
		return
	}
	respondOK(w, reqID, info)
}
