package model

// Result is the outcome of simulating one policy over a process list.
// Completed is in completion order and holds every input process once.
type Result struct {
	Policy    string      `json:"policy"`
	Timeline  []Interval  `json:"timeline"`
	Completed []Execution `json:"completed"`
}

// Makespan is the instant the last interval ends.
func (r *Result) Makespan() int {
	if len(r.Timeline) == 0 {
		return 0
	}
	return r.Timeline[len(r.Timeline)-1].End
}

// BusyTime is the total non-idle time on the timeline.
func (r *Result) BusyTime() int {
	busy := 0
	for _, iv := range r.Timeline {
		if !iv.Idle() {
			busy += iv.Duration()
		}
	}
	return busy
}

// ContextSwitches counts owner changes between consecutive non-idle intervals.
func (r *Result) ContextSwitches() int {
	switches := 0
	last := IdlePID
	for _, iv := range r.Timeline {
		if iv.Idle() {
			continue
		}
		if last != IdlePID && iv.PID != last {
			switches++
		}
		last = iv.PID
	}
	return switches
}

// Summary aggregates per-process metrics of a result.
type Summary struct {
	Processes       int     `json:"processes" yaml:"processes"`
	Makespan        int     `json:"makespan" yaml:"makespan"`
	BusyTime        int     `json:"busy_time" yaml:"busy_time"`
	Utilization     float64 `json:"utilization" yaml:"utilization"`
	Throughput      float64 `json:"throughput" yaml:"throughput"`
	AvgTurnaround   float64 `json:"avg_turnaround" yaml:"avg_turnaround"`
	AvgWaiting      float64 `json:"avg_waiting" yaml:"avg_waiting"`
	AvgResponse     float64 `json:"avg_response" yaml:"avg_response"`
	ContextSwitches int     `json:"context_switches" yaml:"context_switches"`
}

// Summary computes averages and utilization. An empty result yields zeros.
func (r *Result) Summary() Summary {
	s := Summary{
		Processes:       len(r.Completed),
		Makespan:        r.Makespan(),
		BusyTime:        r.BusyTime(),
		ContextSwitches: r.ContextSwitches(),
	}
	if s.Processes == 0 {
		return s
	}

	var turnaround, waiting, response int
	for i := range r.Completed {
		e := &r.Completed[i]
		turnaround += e.Turnaround()
		waiting += e.Waiting()
		response += e.Response()
	}
	n := float64(s.Processes)
	s.AvgTurnaround = float64(turnaround) / n
	s.AvgWaiting = float64(waiting) / n
	s.AvgResponse = float64(response) / n
	if s.Makespan > 0 {
		s.Utilization = float64(s.BusyTime) / float64(s.Makespan)
		s.Throughput = n / float64(s.Makespan)
	}
	return s
}

// Find returns the completed execution for pid.
func (r *Result) Find(pid int) (*Execution, bool) {
	for i := range r.Completed {
		if r.Completed[i].Process.PID == pid {
			return &r.Completed[i], true
		}
	}
	return nil, false
}
