// Package scheduler simulates single-processor CPU scheduling policies over a
// static process list and produces a Gantt timeline plus completion metrics.
package scheduler

import (
	"fmt"
	"log/slog"

	"github.com/me/schedsim/pkg/model"
)

// Policy decides which ready process runs next and for how long.
// The built-in policies are FCFS, RoundRobin and Ranked.
type Policy interface {
	// Name returns the canonical registry name of the policy.
	Name() string

	// Preemptive reports whether a running process can return to READY.
	Preemptive() bool

	validate() []model.FieldError
	schedule(r *run) error
}

// Simulator runs policies and checks their results.
type Simulator struct {
	logger *slog.Logger
}

// New creates a Simulator that logs through logger.
func New(logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger.With("component", "scheduler")}
}

// Run validates processes, simulates p over them and verifies the result.
// The input slice is never modified and the returned result shares no state
// with the simulator.
func (s *Simulator) Run(p Policy, processes []model.Process) (*model.Result, error) {
	if p == nil {
		return nil, model.NewValidationError("no policy selected",
			model.FieldError{Field: "policy", Message: "required"})
	}
	if apiErr := Validate(p, processes); apiErr != nil {
		return nil, apiErr
	}

	r := newRun(p.Name(), processes, s.logger)
	if err := p.schedule(r); err != nil {
		return nil, fmt.Errorf("simulate %s: %w", p.Name(), err)
	}
	res := r.result()
	if err := Verify(res, processes); err != nil {
		return nil, err
	}

	s.logger.Info("simulation complete",
		"policy", res.Policy,
		"processes", len(res.Completed),
		"intervals", len(res.Timeline),
		"makespan", res.Makespan(),
	)
	return res, nil
}

// Run simulates p over processes without logging.
func Run(p Policy, processes []model.Process) (*model.Result, error) {
	return New(slog.New(slog.DiscardHandler)).Run(p, processes)
}
