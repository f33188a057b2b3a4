package report

import "github.com/me/schedsim/pkg/model"

// Document is the serializable view of a simulation, used for --format
// json|yaml and as the body of API responses.
type Document struct {
	ID        string           `json:"id,omitempty" yaml:"id,omitempty"`
	Policy    string           `json:"policy" yaml:"policy"`
	Quantum   int              `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Direction string           `json:"direction,omitempty" yaml:"direction,omitempty"`
	Expr      string           `json:"expr,omitempty" yaml:"expr,omitempty"`
	Timeline  []model.Interval `json:"timeline" yaml:"timeline"`
	Processes []ProcessRow     `json:"processes" yaml:"processes"`
	Summary   model.Summary    `json:"summary" yaml:"summary"`
}

// ProcessRow is one line of the metrics table.
type ProcessRow struct {
	PID        int `json:"pid" yaml:"pid"`
	Arrival    int `json:"arrival" yaml:"arrival"`
	Burst      int `json:"burst" yaml:"burst"`
	Priority   int `json:"priority" yaml:"priority"`
	Start      int `json:"start" yaml:"start"`
	End        int `json:"end" yaml:"end"`
	Turnaround int `json:"turnaround" yaml:"turnaround"`
	Waiting    int `json:"waiting" yaml:"waiting"`
	Response   int `json:"response" yaml:"response"`
	Dispatches int `json:"dispatches" yaml:"dispatches"`
}

// NewDocument builds a Document from res. With coalesce, adjacent slices of
// the same process are merged in the timeline.
func NewDocument(res *model.Result, coalesce bool) *Document {
	timeline := res.Timeline
	if coalesce {
		timeline = model.Coalesce(timeline)
	}
	if timeline == nil {
		timeline = []model.Interval{}
	}

	rows := make([]ProcessRow, 0, len(res.Completed))
	for i := range res.Completed {
		e := &res.Completed[i]
		rows = append(rows, ProcessRow{
			PID:        e.Process.PID,
			Arrival:    e.Process.Arrival,
			Burst:      e.Process.Burst,
			Priority:   e.Process.Priority,
			Start:      e.Start,
			End:        e.End,
			Turnaround: e.Turnaround(),
			Waiting:    e.Waiting(),
			Response:   e.Response(),
			Dispatches: e.Dispatches,
		})
	}

	return &Document{
		Policy:    res.Policy,
		Timeline:  timeline,
		Processes: rows,
		Summary:   res.Summary(),
	}
}

// Result rebuilds the result a Document was made from, so that documents
// received from a server render like local results.
func (d *Document) Result() *model.Result {
	completed := make([]model.Execution, 0, len(d.Processes))
	for _, row := range d.Processes {
		completed = append(completed, model.Execution{
			Process:    model.Process{PID: row.PID, Arrival: row.Arrival, Burst: row.Burst, Priority: row.Priority},
			State:      model.ProcessStateCompleted,
			TimeRan:    row.Burst,
			Start:      row.Start,
			End:        row.End,
			Dispatches: row.Dispatches,
		})
	}
	return &model.Result{
		Policy:    d.Policy,
		Timeline:  append([]model.Interval(nil), d.Timeline...),
		Completed: completed,
	}
}
