package scheduler

import (
	"fmt"

	"github.com/me/schedsim/pkg/model"
)

// Ranked dispatches the best process according to Rank.
//
// Without Preempt the chosen process runs to completion. With Preempt it runs
// until it completes or the next unadmitted process arrives, whichever is
// earlier, and is then re-ranked against everything ready. Ranking cannot
// change between two arrivals, so capping each slice at the next arrival is
// exact preemptive scheduling without per-tick simulation.
type Ranked struct {
	Label   string
	Rank    Rank
	Preempt bool

	// Check, when set, is called after the loop and reports any error the
	// Rank predicate hit while ordering the ready queue.
	Check func() error
}

// SJF is non-preemptive shortest-job-first.
func SJF() Ranked {
	return Ranked{Label: "sjf", Rank: ByBurst()}
}

// SRTF is preemptive shortest-remaining-time-first.
func SRTF() Ranked {
	return Ranked{Label: "srtf", Rank: ByRemaining(), Preempt: true}
}

// Priority is non-preemptive priority scheduling.
func Priority(dir Direction) Ranked {
	return Ranked{Label: "priority", Rank: ByPriority(dir)}
}

// PreemptivePriority re-evaluates priorities at every arrival.
func PreemptivePriority(dir Direction) Ranked {
	return Ranked{Label: "preemptive-priority", Rank: ByPriority(dir), Preempt: true}
}

func (p Ranked) Name() string     { return p.Label }
func (p Ranked) Preemptive() bool { return p.Preempt }

func (p Ranked) validate() []model.FieldError {
	var errs []model.FieldError
	if p.Label == "" {
		errs = append(errs, model.FieldError{Field: "policy", Message: "ranked policy needs a name"})
	}
	if p.Rank == nil {
		errs = append(errs, model.FieldError{Field: "rank", Message: "ranked policy needs a rank predicate"})
	}
	return errs
}

func (p Ranked) schedule(r *run) error {
	q := &rankQueue{rank: p.Rank}
	var err error
	if p.Preempt {
		err = p.preemptive(r, q)
	} else {
		err = p.runToCompletion(r, q)
	}
	if err != nil {
		return err
	}
	if p.Check != nil {
		if err := p.Check(); err != nil {
			return fmt.Errorf("rank: %w", err)
		}
	}
	return nil
}

func (p Ranked) runToCompletion(r *run, q *rankQueue) error {
	for r.unadmitted() || q.Len() > 0 {
		admitted, err := r.admit()
		if err != nil {
			return err
		}
		q.add(admitted...)

		if q.Len() == 0 {
			if err := r.idle(); err != nil {
				return err
			}
			continue
		}

		s := q.best()
		if err := r.dispatch(s, s.Remaining()); err != nil {
			return err
		}
		if err := r.finish(s); err != nil {
			return err
		}
	}
	return nil
}

func (p Ranked) preemptive(r *run, q *rankQueue) error {
	for r.unadmitted() || q.Len() > 0 {
		admitted, err := r.admit()
		if err != nil {
			return err
		}
		q.add(admitted...)

		if q.Len() == 0 {
			if err := r.idle(); err != nil {
				return err
			}
			continue
		}

		s := q.best()
		slice := s.Remaining()
		// admit has taken everything up to now, so next is strictly in the future.
		if next, ok := r.nextArrival(); ok && next-r.now < slice {
			slice = next - r.now
		}
		if err := r.dispatch(s, slice); err != nil {
			return err
		}

		if s.Done() {
			if err := r.finish(s); err != nil {
				return err
			}
			continue
		}
		if err := r.preempt(s); err != nil {
			return err
		}
		q.add(s)
	}
	return nil
}
