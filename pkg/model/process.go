package model

// IdlePID is the owner recorded on timeline intervals where no process runs.
const IdlePID = -1

// NotStarted marks Execution start and end times that have not happened yet.
const NotStarted = -1

// Process describes one unit of CPU work known before the simulation starts.
// Lower Priority values rank higher unless a policy is configured otherwise.
type Process struct {
	PID      int `json:"pid" yaml:"pid"`
	Arrival  int `json:"arrival" yaml:"arrival"`
	Burst    int `json:"burst" yaml:"burst"`
	Priority int `json:"priority" yaml:"priority"`
}

// Execution is the mutable simulation state of a single process.
// It owns a copy of the Process it was created from.
type Execution struct {
	Process    Process      `json:"process"`
	State      ProcessState `json:"state"`
	TimeRan    int          `json:"time_ran"`
	Start      int          `json:"start"`
	End        int          `json:"end"`
	Dispatches int          `json:"dispatches"`
}

// NewExecution wraps p in an unadmitted Execution.
func NewExecution(p Process) *Execution {
	return &Execution{
		Process: p,
		State:   ProcessStateUnadmitted,
		Start:   NotStarted,
		End:     NotStarted,
	}
}

// Remaining returns the CPU time still owed to the process.
func (e *Execution) Remaining() int {
	return e.Process.Burst - e.TimeRan
}

// Done reports whether the process has received its full burst.
func (e *Execution) Done() bool {
	return e.TimeRan == e.Process.Burst
}

// Turnaround is the time from arrival to completion.
func (e *Execution) Turnaround() int {
	return e.End - e.Process.Arrival
}

// Waiting is the time spent ready but not running.
func (e *Execution) Waiting() int {
	return e.End - e.Process.Arrival - e.Process.Burst
}

// Response is the time from arrival to the first dispatch.
func (e *Execution) Response() int {
	return e.Start - e.Process.Arrival
}

// TransitionTo moves the execution to next, rejecting moves the lifecycle does not allow.
func (e *Execution) TransitionTo(next ProcessState) error {
	if !e.State.CanTransitionTo(next) {
		return &InvalidTransitionError{
			Entity: "process",
			ID:     e.Process.PID,
			From:   string(e.State),
			To:     string(next),
		}
	}
	e.State = next
	return nil
}
