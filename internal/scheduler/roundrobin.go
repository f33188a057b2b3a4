package scheduler

import "github.com/me/schedsim/pkg/model"

// RoundRobin gives each ready process at most Quantum time units per turn.
type RoundRobin struct {
	Quantum int
}

func (RoundRobin) Name() string     { return "rr" }
func (RoundRobin) Preemptive() bool { return true }

func (p RoundRobin) validate() []model.FieldError {
	if p.Quantum <= 0 {
		return []model.FieldError{{Field: "quantum", Message: "must be > 0"}}
	}
	return nil
}

func (p RoundRobin) schedule(r *run) error {
	var q fifo
	for r.unadmitted() || q.Len() > 0 {
		admitted, err := r.admit()
		if err != nil {
			return err
		}
		q.push(admitted...)

		if q.Len() == 0 {
			if err := r.idle(); err != nil {
				return err
			}
			continue
		}

		s := q.pop()
		if err := r.dispatch(s, min(p.Quantum, s.Remaining())); err != nil {
			return err
		}

		// Arrivals during the slice queue ahead of the process being rotated out.
		admitted, err = r.admit()
		if err != nil {
			return err
		}
		q.push(admitted...)

		if s.Done() {
			if err := r.finish(s); err != nil {
				return err
			}
			continue
		}
		if err := r.preempt(s); err != nil {
			return err
		}
		q.push(s)
	}
	return nil
}
