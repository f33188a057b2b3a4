package scheduler

import (
	"strings"

	"github.com/me/schedsim/internal/rankexpr"
	"github.com/me/schedsim/pkg/model"
)

// Spec names a policy and its parameters as they arrive from flags, files or
// API requests.
type Spec struct {
	Name      string `json:"policy" yaml:"policy"`
	Quantum   int    `json:"quantum,omitempty" yaml:"quantum,omitempty"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`
	Expr      string `json:"expr,omitempty" yaml:"expr,omitempty"`
}

// Info describes a registered policy.
type Info struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Preemptive  bool   `json:"preemptive" yaml:"preemptive"`
	NeedsExpr   bool   `json:"needs_expr" yaml:"needs_expr"`
}

// registry lists the policies in presentation order.
var registry = []Info{
	{"fcfs", "First-Come-First-Served, non-preemptive, arrival order", false, false},
	{"rr", "Round Robin with a fixed quantum", true, false},
	{"sjf", "Shortest-Job-First, non-preemptive", false, false},
	{"priority", "Priority, non-preemptive (direction lower or higher)", false, false},
	{"preemptive-priority", "Priority, preempted at every arrival", true, false},
	{"srtf", "Shortest-Remaining-Time-First, preemptive SJF", true, false},
	{"custom", "Non-preemptive, ranked by a JavaScript expression", false, true},
	{"custom-preemptive", "Preemptive, ranked by a JavaScript expression", true, true},
}

var aliases = map[string]string{
	"fifo":           "fcfs",
	"round-robin":    "rr",
	"roundrobin":     "rr",
	"ppriority":      "preemptive-priority",
	"priority-pre":   "preemptive-priority",
	"psjf":           "srtf",
	"preemptive-sjf": "srtf",
}

// Canonical resolves aliases and case to a registry name. Unknown names are
// returned lower-cased and trimmed.
func Canonical(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if c, ok := aliases[n]; ok {
		return c
	}
	return n
}

// Policies returns every registered policy in presentation order.
func Policies() []Info {
	return append([]Info(nil), registry...)
}

// Names returns every policy name in presentation order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.Name
	}
	return names
}

// Builtins returns the policies that need no ranking expression.
func Builtins() []string {
	var names []string
	for _, e := range registry {
		if !e.NeedsExpr {
			names = append(names, e.Name)
		}
	}
	return names
}

// Lookup returns the registry entry for name or one of its aliases.
func Lookup(name string) (Info, bool) {
	c := Canonical(name)
	for _, e := range registry {
		if e.Name == c {
			return e, true
		}
	}
	return Info{}, false
}

// Build constructs the policy named by spec. Parameter values such as the
// quantum are checked when the policy runs; Build only fails on unknown
// names, bad directions and ranking expressions that do not compile.
func Build(spec Spec) (Policy, error) {
	name := Canonical(spec.Name)
	switch name {
	case "fcfs":
		return FCFS{}, nil
	case "rr":
		return RoundRobin{Quantum: spec.Quantum}, nil
	case "sjf":
		return SJF(), nil
	case "srtf":
		return SRTF(), nil
	case "priority", "preemptive-priority":
		dir, err := ParseDirection(spec.Direction)
		if err != nil {
			return nil, err
		}
		if name == "priority" {
			return Priority(dir), nil
		}
		return PreemptivePriority(dir), nil
	case "custom", "custom-preemptive":
		expr, err := rankexpr.Compile(spec.Expr)
		if err != nil {
			return nil, err
		}
		return Ranked{
			Label:   name,
			Rank:    expr.Rank,
			Preempt: name == "custom-preemptive",
			Check:   expr.Err,
		}, nil
	default:
		return nil, model.NewNotFoundError("policy", spec.Name)
	}
}
