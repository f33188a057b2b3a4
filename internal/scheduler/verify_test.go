package scheduler

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/me/schedsim/pkg/model"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		procs  []model.Process
		fields []string
	}{
		{"valid", FCFS{}, sample(), nil},
		{"empty list", SJF(), nil, nil},
		{"zero burst", FCFS{}, []model.Process{p(1, 0, 0, 0)}, []string{"processes[0].burst"}},
		{"negative arrival", FCFS{}, []model.Process{p(1, -2, 1, 0)}, []string{"processes[0].arrival"}},
		{"negative pid", FCFS{}, []model.Process{p(-1, 0, 1, 0)}, []string{"processes[0].pid"}},
		{"duplicate pid", FCFS{}, []model.Process{p(7, 0, 1, 0), p(7, 1, 1, 0)}, []string{"processes[1].pid"}},
		{"zero quantum", RoundRobin{}, sample(), []string{"quantum"}},
		{"arrival past horizon", FCFS{}, []model.Process{p(1, math.MaxInt-2, 5, 0)}, []string{"processes"}},
		{"bursts overflow", RoundRobin{Quantum: 2}, []model.Process{p(1, 0, math.MaxInt, 0), p(2, 0, 5, 0)}, []string{"processes"}},
		{"at the horizon", FCFS{}, []model.Process{p(1, MaxTime-5, 5, 0)}, nil},
		{"unnamed ranked", Ranked{Rank: ByBurst()}, sample(), []string{"policy"}},
		{
			"collects every problem",
			RoundRobin{Quantum: -1},
			[]model.Process{p(1, -1, 0, 0), p(1, 0, 1, 0)},
			[]string{"quantum", "processes[0].arrival", "processes[0].burst", "processes[1].pid"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := Validate(tt.policy, tt.procs)
			if len(tt.fields) == 0 {
				if apiErr != nil {
					t.Fatalf("Validate() = %v, want nil", apiErr)
				}
				return
			}
			if apiErr == nil {
				t.Fatal("Validate() = nil, want error")
			}
			var got []string
			for _, d := range apiErr.Details {
				got = append(got, d.Field)
			}
			if strings.Join(got, ",") != strings.Join(tt.fields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestRun_RejectsOverflowingInput(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		procs  []model.Process
	}{
		{"late arrival", FCFS{}, []model.Process{p(1, math.MaxInt-2, 5, 0)}},
		{"huge bursts", RoundRobin{Quantum: 2}, []model.Process{p(1, 0, math.MaxInt, 0), p(2, 0, 5, 0)}},
		{"sum of bursts", SRTF(), []model.Process{p(1, 0, MaxTime, 0), p(2, 1, MaxTime, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(tt.policy, tt.procs)
			if !model.IsValidation(err) {
				t.Fatalf("Run() error = %v, want a validation error", err)
			}
			if errors.Is(err, model.ErrInconsistent) {
				t.Errorf("input overflow reported as an engine failure: %v", err)
			}
		})
	}
}

func TestHorizonAndEstimateSlices(t *testing.T) {
	procs := []model.Process{p(1, 0, 5, 0), p(2, 10, 3, 0)}
	if h, ok := Horizon(procs); !ok || h != 18 {
		t.Errorf("Horizon() = %d, %v, want 18, true", h, ok)
	}
	if _, ok := Horizon([]model.Process{p(1, MaxTime, 1, 0)}); ok {
		t.Error("Horizon() ok past MaxTime")
	}

	tests := []struct {
		name   string
		policy Policy
		want   int
	}{
		{"fcfs", FCFS{}, 6},
		{"srtf", SRTF(), 6},
		{"rr q=2", RoundRobin{Quantum: 2}, 2 + 3 + 2},
		{"rr q=1", RoundRobin{Quantum: 1}, 2 + 5 + 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateSlices(tt.policy, procs); got != tt.want {
				t.Errorf("EstimateSlices() = %d, want %d", got, tt.want)
			}
		})
	}

	huge := []model.Process{p(1, 0, math.MaxInt, 0), p(2, 0, math.MaxInt, 0)}
	if got := EstimateSlices(RoundRobin{Quantum: 1}, huge); got != math.MaxInt {
		t.Errorf("EstimateSlices() = %d, want saturation at MaxInt", got)
	}
}

func TestVerify_DetectsTampering(t *testing.T) {
	procs := []model.Process{p(1, 0, 2, 0), p(2, 1, 2, 0)}

	tests := []struct {
		name   string
		tamper func(res *model.Result)
		reason string
	}{
		{"dropped completion", func(res *model.Result) { res.Completed = res.Completed[:1] }, "completed 1 of 2"},
		{"gap in timeline", func(res *model.Result) { res.Timeline[1].Start++ }, "starts at"},
		{"empty interval", func(res *model.Result) { res.Timeline[0].End = res.Timeline[0].Start }, "is empty"},
		{"stolen time", func(res *model.Result) { res.Timeline[1].PID = 1 }, "owns"},
		{"changed descriptor", func(res *model.Result) { res.Completed[0].Process.Priority = 9 }, "descriptor changed"},
		{"early start", func(res *model.Result) { res.Completed[1].Start = 0 }, "before arriving"},
		{"short run", func(res *model.Result) { res.Completed[0].TimeRan = 1 }, "ran 1 of 2"},
		{"trailing idle", func(res *model.Result) {
			res.Timeline = append(res.Timeline, model.Interval{PID: model.IdlePID, Start: 4, End: 6})
		}, "timeline ends at 6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustRun(t, FCFS{}, procs)
			if err := Verify(res, procs); err != nil {
				t.Fatalf("Verify before tampering: %v", err)
			}
			tt.tamper(res)

			err := Verify(res, procs)
			var ce *model.ConsistencyError
			if !errors.As(err, &ce) {
				t.Fatalf("Verify error = %v, want *model.ConsistencyError", err)
			}
			if !errors.Is(err, model.ErrInconsistent) {
				t.Error("error does not wrap ErrInconsistent")
			}
			if !strings.Contains(ce.Reason, tt.reason) {
				t.Errorf("Reason = %q, want it to contain %q", ce.Reason, tt.reason)
			}
		})
	}
}
