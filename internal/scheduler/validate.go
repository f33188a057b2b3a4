package scheduler

import (
	"fmt"
	"math"

	"github.com/me/schedsim/pkg/model"
)

// MaxTime is the latest instant a simulation may reach. Keeping it well below
// math.MaxInt leaves room for the clock and the loop's step bound.
const MaxTime = math.MaxInt / 4

// Validate checks the policy parameters and the process list before a run.
// Returns nil if valid, or an *model.APIError with FieldError details.
func Validate(p Policy, processes []model.Process) *model.APIError {
	var errs []model.FieldError
	errs = append(errs, p.validate()...)
	errs = append(errs, validateProcesses(processes)...)

	if len(errs) == 0 {
		return nil
	}
	return model.NewValidationError("invalid simulation input", errs...)
}

func validateProcesses(processes []model.Process) []model.FieldError {
	var errs []model.FieldError
	seen := make(map[int]int, len(processes))

	for i, p := range processes {
		field := func(name string) string {
			return fmt.Sprintf("processes[%d].%s", i, name)
		}
		if p.PID < 0 {
			errs = append(errs, model.FieldError{
				Field:   field("pid"),
				Message: fmt.Sprintf("pid %d is negative; negative pids are reserved for idle time", p.PID),
			})
		}
		if first, dup := seen[p.PID]; dup {
			errs = append(errs, model.FieldError{
				Field:   field("pid"),
				Message: fmt.Sprintf("pid %d duplicates processes[%d]", p.PID, first),
			})
		} else {
			seen[p.PID] = i
		}
		if p.Arrival < 0 {
			errs = append(errs, model.FieldError{Field: field("arrival"), Message: "must be >= 0"})
		}
		if p.Burst <= 0 {
			errs = append(errs, model.FieldError{Field: field("burst"), Message: "must be > 0"})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	if _, ok := Horizon(processes); !ok {
		errs = append(errs, model.FieldError{
			Field:   "processes",
			Message: fmt.Sprintf("latest arrival plus total burst exceeds %d time units", MaxTime),
		})
	}
	return errs
}

// Horizon returns the latest arrival plus the total burst of processes, the
// instant by which every policy has finished. ok is false when that exceeds
// MaxTime. Non-positive bursts and arrivals are ignored.
func Horizon(processes []model.Process) (horizon int, ok bool) {
	total, latest := 0, 0
	for _, p := range processes {
		if p.Burst > 0 {
			if p.Burst > MaxTime-total {
				return 0, false
			}
			total += p.Burst
		}
		latest = max(latest, p.Arrival)
	}
	if latest > MaxTime-total {
		return 0, false
	}
	return latest + total, true
}

// EstimateSlices bounds the number of timeline intervals p produces over
// processes, saturating at math.MaxInt. Round Robin adds one slice per
// quantum of burst; the other policies split a process only at arrivals.
func EstimateSlices(p Policy, processes []model.Process) int {
	n := len(processes)
	rr, ok := p.(RoundRobin)
	if !ok || rr.Quantum <= 0 {
		return 3 * n
	}
	slices := n // idle gaps
	for _, proc := range processes {
		if proc.Burst <= 0 {
			continue
		}
		k := (proc.Burst-1)/rr.Quantum + 1
		if k > math.MaxInt-slices {
			return math.MaxInt
		}
		slices += k
	}
	return slices
}
