package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/me/schedsim/internal/report"
	"github.com/me/schedsim/pkg/model"
)

// streamStart opens a simulation stream.
type streamStart struct {
	ID        string `json:"id"`
	Policy    string `json:"policy"`
	Quantum   int    `json:"quantum,omitempty"`
	Processes int    `json:"processes"`
}

// handleStreamSimulation replays a simulation as Server-Sent Events: one
// "start" event, an "interval" event per timeline slice, a "complete" event
// when a process finishes, and a closing "summary" event.
// POST /api/v1/simulations/stream
func (s *Server) handleStreamSimulation(w http.ResponseWriter, r *http.Request) {
	reqID := RequestIDFromContext(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, reqID, http.StatusInternalServerError,
			&model.APIError{Code: model.ErrInternal, Message: "streaming not supported"})
		return
	}

	req, spec, res, ok := s.simulate(w, r, reqID)
	if !ok {
		return
	}
	if r.URL.Query().Get("coalesce") == "true" {
		res.Timeline = model.Coalesce(res.Timeline)
	}

	// Set headers for SSE.
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering

	id := simulationID()
	start := streamStart{ID: id, Policy: res.Policy, Processes: len(req.Processes)}
	if res.Policy == "rr" {
		start.Quantum = spec.Quantum
	}
	if err := sendSSEEvent(w, flusher, "start", start); err != nil {
		s.logger.Debug("sse client disconnected", "id", id, "error", err)
		return
	}

	rows := report.NewDocument(res, false).Processes
	next := 0
	for _, iv := range res.Timeline {
		if r.Context().Err() != nil {
			return
		}
		if err := sendSSEEvent(w, flusher, "interval", iv); err != nil {
			s.logger.Debug("sse client disconnected", "id", id, "error", err)
			return
		}
		// Completions are in end-time order, so they interleave with the
		// slices that end them.
		for next < len(rows) && rows[next].End <= iv.End {
			if err := sendSSEEvent(w, flusher, "complete", rows[next]); err != nil {
				return
			}
			next++
		}
	}

	if err := sendSSEEvent(w, flusher, "summary", res.Summary()); err != nil {
		return
	}
	s.logger.Info("simulation streamed", "id", id, "policy", res.Policy, "intervals", len(res.Timeline))
}

func sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData)
	if err != nil {
		return err
	}

	flusher.Flush()
	return nil
}
