package scheduler

import (
	"fmt"

	"github.com/me/schedsim/pkg/model"
)

// Verify checks the invariants every policy must hold:
//   - each input process is completed exactly once, unchanged;
//   - the timeline starts at 0 and is contiguous with non-empty intervals;
//   - each process owns exactly Burst time units of the timeline;
//   - turnaround >= burst and start >= arrival for every process.
//
// A violation is returned as *model.ConsistencyError.
func Verify(res *model.Result, input []model.Process) error {
	fail := func(format string, args ...any) error {
		return &model.ConsistencyError{Policy: res.Policy, Reason: fmt.Sprintf(format, args...)}
	}

	if len(res.Completed) != len(input) {
		return fail("completed %d of %d processes", len(res.Completed), len(input))
	}

	want := make(map[int]model.Process, len(input))
	for _, p := range input {
		want[p.PID] = p
	}
	seen := make(map[int]bool, len(input))
	lastEnd := 0
	for i := range res.Completed {
		e := &res.Completed[i]
		pid := e.Process.PID
		p, ok := want[pid]
		switch {
		case !ok:
			return fail("completed unknown pid %d", pid)
		case seen[pid]:
			return fail("pid %d completed twice", pid)
		case e.Process != p:
			return fail("pid %d descriptor changed during the run", pid)
		case e.State != model.ProcessStateCompleted:
			return fail("pid %d in completed table with state %s", pid, e.State)
		case e.TimeRan != p.Burst:
			return fail("pid %d ran %d of %d", pid, e.TimeRan, p.Burst)
		case e.Start < p.Arrival:
			return fail("pid %d started at %d before arriving at %d", pid, e.Start, p.Arrival)
		case e.Turnaround() < p.Burst:
			return fail("pid %d turnaround %d below burst %d", pid, e.Turnaround(), p.Burst)
		}
		seen[pid] = true
		lastEnd = max(lastEnd, e.End)
	}

	busy := make(map[int]int, len(input))
	at := 0
	for i, iv := range res.Timeline {
		if iv.Start != at {
			return fail("timeline interval %d starts at %d, want %d", i, iv.Start, at)
		}
		if iv.End <= iv.Start {
			return fail("timeline interval %d is empty [%d, %d)", i, iv.Start, iv.End)
		}
		if !iv.Idle() {
			if _, ok := want[iv.PID]; !ok {
				return fail("timeline interval %d owned by unknown pid %d", i, iv.PID)
			}
			busy[iv.PID] += iv.Duration()
		}
		at = iv.End
	}
	for pid, p := range want {
		if busy[pid] != p.Burst {
			return fail("pid %d owns %d time units of the timeline, want %d", pid, busy[pid], p.Burst)
		}
	}
	if at != lastEnd {
		return fail("timeline ends at %d but last completion is at %d", at, lastEnd)
	}
	return nil
}
