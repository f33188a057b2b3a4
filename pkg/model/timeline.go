package model

// Interval is one half-open span [Start, End) of the Gantt timeline.
type Interval struct {
	PID   int `json:"pid" yaml:"pid"`
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Idle reports whether no process owns the interval.
func (iv Interval) Idle() bool {
	return iv.PID == IdlePID
}

// Duration returns End - Start.
func (iv Interval) Duration() int {
	return iv.End - iv.Start
}

// Coalesce merges adjacent intervals that share an owner. The input is not
// modified. Used for presentation only; results keep one interval per slice.
func Coalesce(timeline []Interval) []Interval {
	if len(timeline) == 0 {
		return nil
	}
	out := make([]Interval, 0, len(timeline))
	out = append(out, timeline[0])
	for _, iv := range timeline[1:] {
		last := &out[len(out)-1]
		if last.PID == iv.PID && last.End == iv.Start {
			last.End = iv.End
			continue
		}
		out = append(out, iv)
	}
	return out
}
