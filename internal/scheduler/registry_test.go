package scheduler

import (
	"errors"
	"reflect"
	"testing"

	"github.com/me/schedsim/pkg/model"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"FCFS", "fcfs"},
		{" fifo ", "fcfs"},
		{"Round-Robin", "rr"},
		{"roundrobin", "rr"},
		{"ppriority", "preemptive-priority"},
		{"PSJF", "srtf"},
		{"lottery", "lottery"},
	}
	for _, tt := range tests {
		if got := Canonical(tt.in); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNamesAndBuiltins(t *testing.T) {
	wantBuiltins := []string{"fcfs", "rr", "sjf", "priority", "preemptive-priority", "srtf"}
	if got := Builtins(); !reflect.DeepEqual(got, wantBuiltins) {
		t.Errorf("Builtins() = %v, want %v", got, wantBuiltins)
	}
	names := Names()
	if len(names) != len(wantBuiltins)+2 {
		t.Errorf("Names() = %v", names)
	}
	for _, info := range Policies() {
		got, ok := Lookup(info.Name)
		if !ok || got.Description == "" {
			t.Errorf("Lookup(%q) = %+v, %v", info.Name, got, ok)
		}
		if info.NeedsExpr {
			continue
		}
		// The registry flag must agree with the built policy.
		pol, err := Build(Spec{Name: info.Name, Quantum: 1})
		if err != nil {
			t.Fatalf("Build(%s): %v", info.Name, err)
		}
		if pol.Preemptive() != info.Preemptive {
			t.Errorf("%s: registry preemptive=%v, policy says %v", info.Name, info.Preemptive, pol.Preemptive())
		}
	}
	if info, ok := Lookup("PSJF"); !ok || info.Name != "srtf" {
		t.Errorf("Lookup(PSJF) = %+v, %v", info, ok)
	}
	if _, ok := Lookup("lottery"); ok {
		t.Error("Lookup(lottery) should not be found")
	}
}

func TestBuild(t *testing.T) {
	tests := []struct {
		spec       Spec
		name       string
		preemptive bool
	}{
		{Spec{Name: "fcfs"}, "fcfs", false},
		{Spec{Name: "fifo"}, "fcfs", false},
		{Spec{Name: "rr", Quantum: 4}, "rr", true},
		{Spec{Name: "sjf"}, "sjf", false},
		{Spec{Name: "srtf"}, "srtf", true},
		{Spec{Name: "priority", Direction: "higher"}, "priority", false},
		{Spec{Name: "preemptive-priority"}, "preemptive-priority", true},
		{Spec{Name: "custom", Expr: "a.burst < b.burst"}, "custom", false},
		{Spec{Name: "custom-preemptive", Expr: "a.remaining < b.remaining"}, "custom-preemptive", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec.Name, func(t *testing.T) {
			pol, err := Build(tt.spec)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if pol.Name() != tt.name || pol.Preemptive() != tt.preemptive {
				t.Errorf("got %s preemptive=%v, want %s preemptive=%v", pol.Name(), pol.Preemptive(), tt.name, tt.preemptive)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		code model.ErrorCode
	}{
		{"unknown policy", Spec{Name: "lottery"}, model.ErrNotFound},
		{"bad direction", Spec{Name: "priority", Direction: "sideways"}, model.ErrValidation},
		{"custom without expr", Spec{Name: "custom"}, model.ErrValidation},
		{"custom syntax error", Spec{Name: "custom-preemptive", Expr: "a.burst <"}, model.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.spec)
			var apiErr *model.APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Build error = %v, want *model.APIError", err)
			}
			if apiErr.Code != tt.code {
				t.Errorf("Code = %q, want %q", apiErr.Code, tt.code)
			}
		})
	}
}

func TestBuild_RoundRobinQuantumCheckedAtRun(t *testing.T) {
	pol, err := Build(Spec{Name: "rr"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := Run(pol, sample()); !model.IsValidation(err) {
		t.Errorf("Run with zero quantum error = %v, want validation error", err)
	}
}

func TestBuild_CustomMatchesBuiltin(t *testing.T) {
	tests := []struct {
		builtin Policy
		spec    Spec
	}{
		{
			Priority(LowerFirst),
			Spec{Name: "custom", Expr: "a.priority < b.priority || (a.priority == b.priority && a.arrival < b.arrival)"},
		},
		{
			PreemptivePriority(LowerFirst),
			Spec{Name: "custom-preemptive", Expr: "a.priority < b.priority || (a.priority == b.priority && a.arrival < b.arrival)"},
		},
		{
			SRTF(),
			Spec{Name: "custom-preemptive", Expr: "a.remaining < b.remaining || (a.remaining == b.remaining && a.arrival < b.arrival)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.spec.Name+"/"+tt.builtin.Name(), func(t *testing.T) {
			custom, err := Build(tt.spec)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			want := mustRun(t, tt.builtin, sample())
			got := mustRun(t, custom, sample())
			if !reflect.DeepEqual(got.Timeline, want.Timeline) {
				t.Errorf("timeline:\n got  %v\n want %v", got.Timeline, want.Timeline)
			}
		})
	}
}

func TestBuild_CustomRuntimeErrorFailsRun(t *testing.T) {
	// The probe uses pid 0, so the failure only shows up during the run.
	pol, err := Build(Spec{Name: "custom", Expr: "a.pid == 0 || b.pid == 0 || a.missing.value"})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	_, err = Run(pol, sample())
	if !model.IsValidation(err) {
		t.Errorf("Run error = %v, want validation error", err)
	}
}
