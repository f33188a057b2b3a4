package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/me/schedsim/internal/logging"
	"github.com/me/schedsim/internal/report"
	"github.com/me/schedsim/internal/scheduler"
	"github.com/me/schedsim/pkg/model"
)

// decodeBody reads a JSON request body, rejecting unknown fields.
func decodeBody(r *http.Request, v any) *model.APIError {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return model.NewValidationError("request body too large",
				model.FieldError{Field: "processes", Message: fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit)})
		}
		return &model.APIError{Code: model.ErrValidation, Message: "Invalid JSON body: " + err.Error()}
	}
	return nil
}

func (s *Server) checkSize(processes []model.Process) *model.APIError {
	if len(processes) > s.config.MaxProcesses {
		return model.NewValidationError("too many processes",
			model.FieldError{Field: "processes", Message: fmt.Sprintf("%d processes exceed the limit of %d", len(processes), s.config.MaxProcesses)})
	}
	return nil
}

// checkWork rejects requests whose timeline would exceed MaxSlices.
func (s *Server) checkWork(policy scheduler.Policy, processes []model.Process) *model.APIError {
	if n := scheduler.EstimateSlices(policy, processes); n > s.config.MaxSlices {
		return model.NewValidationError("simulation too large",
			model.FieldError{Field: "processes", Message: fmt.Sprintf("%s would produce up to %d timeline slices, over the limit of %d", policy.Name(), n, s.config.MaxSlices)})
	}
	return nil
}

// policySpec fills in the server default quantum for Round Robin.
func (s *Server) policySpec(name string, quantum int, direction, expr string) scheduler.Spec {
	spec := scheduler.Spec{Name: name, Quantum: quantum, Direction: direction, Expr: expr}
	if spec.Quantum == 0 && scheduler.Canonical(name) == "rr" {
		spec.Quantum = s.config.DefaultQuantum
	}
	return spec
}

// simulate decodes a SimulationRequest from r and runs it. On failure the
// error response has already been written and ok is false.
func (s *Server) simulate(w http.ResponseWriter, r *http.Request, reqID string) (req model.SimulationRequest, spec scheduler.Spec, res *model.Result, ok bool) {
	if apiErr := decodeBody(r, &req); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return req, spec, nil, false
	}
	if req.Policy == "" {
		respondError(w, reqID, http.StatusBadRequest,
			model.NewValidationError("missing required field",
				model.FieldError{Field: "policy", Message: "policy is required"}))
		return req, spec, nil, false
	}
	if apiErr := s.checkSize(req.Processes); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return req, spec, nil, false
	}

	spec = s.policySpec(req.Policy, req.Quantum, req.Direction, req.Expr)
	policy, err := scheduler.Build(spec)
	if err != nil {
		respondFailure(w, reqID, err)
		return req, spec, nil, false
	}
	if apiErr := s.checkWork(policy, req.Processes); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return req, spec, nil, false
	}
	res, err = s.sim.Run(policy, req.Processes)
	if err != nil {
		if !model.IsValidation(err) {
			s.logger.Error("simulation failed", "policy", policy.Name(), "request_id", reqID, logging.Err(err))
		}
		respondFailure(w, reqID, err)
		return req, spec, nil, false
	}
	return req, spec, res, true
}

func (s *Server) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	req, spec, res, ok := s.simulate(w, r, reqID)
	if !ok {
		return
	}

	doc := report.NewDocument(res, r.URL.Query().Get("coalesce") == "true")
	doc.ID = simulationID()
	if res.Policy == "rr" {
		doc.Quantum = spec.Quantum
	}
	doc.Direction = req.Direction
	doc.Expr = req.Expr

	s.logger.Info("simulation served", "id", doc.ID, "policy", doc.Policy, "processes", len(req.Processes))
	respondOK(w, reqID, doc)
}

func (s *Server) handleCreateComparison(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	var req model.ComparisonRequest
	if apiErr := decodeBody(r, &req); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}
	if apiErr := s.checkSize(req.Processes); apiErr != nil {
		respondError(w, reqID, http.StatusBadRequest, apiErr)
		return
	}

	names := req.Policies
	if len(names) == 0 {
		names = scheduler.Builtins()
	}

	entries := make([]model.ComparisonEntry, 0, len(names))
	for _, name := range names {
		if err := r.Context().Err(); err != nil {
			s.logger.Warn("comparison abandoned", "request_id", reqID, logging.Err(err))
			return
		}
		policy, err := scheduler.Build(s.policySpec(name, req.Quantum, req.Direction, ""))
		if err != nil {
			respondFailure(w, reqID, err)
			return
		}
		if apiErr := s.checkWork(policy, req.Processes); apiErr != nil {
			respondError(w, reqID, http.StatusBadRequest, apiErr)
			return
		}
		res, err := s.sim.Run(policy, req.Processes)
		if err != nil {
			if !model.IsValidation(err) {
				s.logger.Error("simulation failed", "policy", policy.Name(), "request_id", reqID, logging.Err(err))
			}
			respondFailure(w, reqID, err)
			return
		}
		entries = append(entries, model.ComparisonEntry{Policy: res.Policy, Summary: res.Summary()})
	}
	respondOK(w, reqID, entries)
}
