package scheduler

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/me/schedsim/pkg/model"
)

// slot pairs an execution with its position in arrival order.
// seq is the last tie-breaker of every ready structure.
type slot struct {
	*model.Execution
	seq int
}

// run is the state of one policy invocation: the simulated clock, the
// unadmitted processes and the result accumulator.
type run struct {
	policy    string
	logger    *slog.Logger
	now       int
	pending   []*slot
	timeline  []model.Interval
	completed []model.Execution
	steps     int
	maxSteps  int
}

func newRun(policy string, processes []model.Process, logger *slog.Logger) *run {
	pending := make([]*slot, len(processes))
	total := 0
	for i, p := range processes {
		pending[i] = &slot{Execution: model.NewExecution(p)}
		total += p.Burst
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Process.Arrival < pending[j].Process.Arrival
	})
	for i := range pending {
		pending[i].seq = i
	}

	// Every step either dispatches at least one time unit or idles up to an
	// arrival, so a correct loop never reaches this bound.
	return &run{
		policy:    policy,
		logger:    logger.With("policy", policy),
		pending:   pending,
		timeline:  make([]model.Interval, 0, len(processes)),
		completed: make([]model.Execution, 0, len(processes)),
		maxSteps:  2*(len(processes)+total) + 1,
	}
}

// unadmitted reports whether any process has not reached the ready queue yet.
func (r *run) unadmitted() bool {
	return len(r.pending) > 0
}

// nextArrival returns the arrival time of the earliest unadmitted process.
func (r *run) nextArrival() (int, bool) {
	if len(r.pending) == 0 {
		return 0, false
	}
	return r.pending[0].Process.Arrival, true
}

// admit moves every process with Arrival <= now out of the unadmitted list,
// in arrival order, and returns them.
func (r *run) admit() ([]*slot, error) {
	n := 0
	for n < len(r.pending) && r.pending[n].Process.Arrival <= r.now {
		n++
	}
	if n == 0 {
		return nil, nil
	}
	admitted := r.pending[:n:n]
	r.pending = r.pending[n:]

	for _, s := range admitted {
		if err := r.transition(s, model.ProcessStateReady); err != nil {
			return nil, err
		}
		r.logger.Debug("process admitted", "pid", s.Process.PID, "time", r.now)
	}
	return admitted, nil
}

// idle emits an idle interval up to the next arrival and advances the clock.
func (r *run) idle() error {
	if err := r.step(); err != nil {
		return err
	}
	next, ok := r.nextArrival()
	if !ok {
		return r.inconsistent("cpu idle with nothing left to admit", nil)
	}
	if next <= r.now {
		return r.inconsistent(fmt.Sprintf("idle until %d at time %d", next, r.now), nil)
	}
	r.logger.Debug("cpu idle", "from", r.now, "to", next)
	r.emit(model.IdlePID, next)
	return nil
}

// dispatch runs s for d time units starting at the current time.
func (r *run) dispatch(s *slot, d int) error {
	if err := r.step(); err != nil {
		return err
	}
	if d <= 0 || d > s.Remaining() {
		return r.inconsistent(fmt.Sprintf("slice of %d for pid %d with %d remaining", d, s.Process.PID, s.Remaining()), nil)
	}
	if err := r.transition(s, model.ProcessStateRunning); err != nil {
		return err
	}
	if s.Start == model.NotStarted {
		s.Start = r.now
	}
	s.Dispatches++

	r.logger.Debug("process dispatched", "pid", s.Process.PID, "from", r.now, "to", r.now+d)
	r.emit(s.Process.PID, r.now+d)
	s.TimeRan += d
	return nil
}

// preempt returns a running process to READY.
func (r *run) preempt(s *slot) error {
	if err := r.transition(s, model.ProcessStateReady); err != nil {
		return err
	}
	r.logger.Debug("process preempted", "pid", s.Process.PID, "time", r.now, "remaining", s.Remaining())
	return nil
}

// finish records a fully served process in the completed table.
func (r *run) finish(s *slot) error {
	if !s.Done() {
		return r.inconsistent(fmt.Sprintf("pid %d finished with %d remaining", s.Process.PID, s.Remaining()), nil)
	}
	if err := r.transition(s, model.ProcessStateCompleted); err != nil {
		return err
	}
	s.End = r.now
	r.completed = append(r.completed, *s.Execution)
	r.logger.Debug("process completed", "pid", s.Process.PID, "time", r.now)
	return nil
}

func (r *run) emit(pid, end int) {
	r.timeline = append(r.timeline, model.Interval{PID: pid, Start: r.now, End: end})
	r.now = end
}

func (r *run) transition(s *slot, next model.ProcessState) error {
	if err := s.TransitionTo(next); err != nil {
		return r.inconsistent("state transition", err)
	}
	return nil
}

func (r *run) step() error {
	r.steps++
	if r.steps > r.maxSteps {
		return r.inconsistent(fmt.Sprintf("loop exceeded %d steps", r.maxSteps), nil)
	}
	return nil
}

func (r *run) inconsistent(reason string, err error) error {
	return &model.ConsistencyError{Policy: r.policy, Reason: reason, Err: err}
}

func (r *run) result() *model.Result {
	return &model.Result{
		Policy:    r.policy,
		Timeline:  r.timeline,
		Completed: r.completed,
	}
}
