package scheduler

import "github.com/me/schedsim/pkg/model"

// FCFS runs processes to completion in arrival order.
// Ties in arrival keep input order.
type FCFS struct{}

func (FCFS) Name() string     { return "fcfs" }
func (FCFS) Preemptive() bool { return false }

func (FCFS) validate() []model.FieldError { return nil }

func (FCFS) schedule(r *run) error {
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
		if err := r.dispatch(s, s.Remaining()); err != nil {
			return err
		}
		if err := r.finish(s); err != nil {
			return err
		}
	}
	return nil
}
