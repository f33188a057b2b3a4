package workload

import (
	"sort"

	"github.com/me/schedsim/pkg/model"
)

var samples = map[string]Workload{
	"classic": {
		Name:        "classic",
		Description: "Six processes with a late straggler and an idle gap",
		Quantum:     2,
		Processes: []model.Process{
			{PID: 1, Arrival: 3, Burst: 10},
			{PID: 2, Arrival: 2, Burst: 1},
			{PID: 3, Arrival: 4, Burst: 2},
			{PID: 4, Arrival: 10, Burst: 6},
			{PID: 5, Arrival: 6, Burst: 5},
			{PID: 6, Arrival: 28, Burst: 1},
		},
	},
	"staggered": {
		Name:        "staggered",
		Description: "Six processes arriving one tick apart",
		Quantum:     2,
		Processes: []model.Process{
			{PID: 1, Arrival: 0, Burst: 5},
			{PID: 2, Arrival: 1, Burst: 6},
			{PID: 3, Arrival: 2, Burst: 3},
			{PID: 4, Arrival: 3, Burst: 1},
			{PID: 5, Arrival: 4, Burst: 5},
			{PID: 6, Arrival: 6, Burst: 4},
		},
	},
	"priority": {
		Name:        "priority",
		Description: "Five prioritised processes, lower value first",
		Quantum:     3,
		Processes: []model.Process{
			{PID: 1, Arrival: 0, Burst: 8, Priority: 2},
			{PID: 2, Arrival: 1, Burst: 4, Priority: 1},
			{PID: 3, Arrival: 2, Burst: 9, Priority: 3},
			{PID: 4, Arrival: 3, Burst: 5, Priority: 2},
			{PID: 5, Arrival: 4, Burst: 2, Priority: 1},
		},
	},
	"priority-small": {
		Name:        "priority-small",
		Description: "Non-preemptive priority keeps the first arrival running",
		Processes: []model.Process{
			{PID: 1, Arrival: 0, Burst: 5, Priority: 2},
			{PID: 2, Arrival: 1, Burst: 3, Priority: 1},
			{PID: 3, Arrival: 2, Burst: 1, Priority: 3},
		},
	},
	"rr-small": {
		Name:        "rr-small",
		Description: "Two processes alternating under a quantum of 2",
		Quantum:     2,
		Processes: []model.Process{
			{PID: 1, Arrival: 0, Burst: 5},
			{PID: 2, Arrival: 1, Burst: 3},
		},
	},
}

// SampleNames returns the built-in workload names in sorted order.
func SampleNames() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sample returns a copy of the named built-in workload.
func Sample(name string) (*Workload, bool) {
	s, ok := samples[name]
	if !ok {
		return nil, false
	}
	s.Processes = append([]model.Process(nil), s.Processes...)
	return &s, true
}
