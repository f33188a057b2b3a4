package scheduler

import (
	"fmt"
	"strings"

	"github.com/me/schedsim/pkg/model"
)

// Rank reports whether a must be dispatched before b.
// It must be a strict ordering: Rank(a, a) is false and Rank(a, b) implies
// !Rank(b, a). Ready structures use it as their Less function directly.
type Rank func(a, b *model.Execution) bool

// Direction selects which end of the priority scale wins.
type Direction string

const (
	// LowerFirst dispatches the smallest priority value first.
	LowerFirst Direction = "lower"
	// HigherFirst dispatches the largest priority value first.
	HigherFirst Direction = "higher"
)

// ParseDirection converts a flag or request value to a Direction.
// An empty string means LowerFirst.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lower", "low", "asc":
		return LowerFirst, nil
	case "higher", "high", "desc":
		return HigherFirst, nil
	default:
		return "", model.NewValidationError("unknown priority direction",
			model.FieldError{Field: "direction", Message: fmt.Sprintf("%q is not one of lower, higher", s)})
	}
}

// ByPriority ranks by priority value in the given direction, then by earlier arrival.
func ByPriority(dir Direction) Rank {
	if dir == HigherFirst {
		return func(a, b *model.Execution) bool {
			if a.Process.Priority != b.Process.Priority {
				return a.Process.Priority > b.Process.Priority
			}
			return earlierArrival(a, b)
		}
	}
	return func(a, b *model.Execution) bool {
		if a.Process.Priority != b.Process.Priority {
			return a.Process.Priority < b.Process.Priority
		}
		return earlierArrival(a, b)
	}
}

// ByBurst ranks the shorter total burst first, then earlier arrival.
func ByBurst() Rank {
	return func(a, b *model.Execution) bool {
		if a.Process.Burst != b.Process.Burst {
			return a.Process.Burst < b.Process.Burst
		}
		return earlierArrival(a, b)
	}
}

// ByRemaining ranks the shorter remaining burst first, then earlier arrival.
func ByRemaining() Rank {
	return func(a, b *model.Execution) bool {
		if a.Remaining() != b.Remaining() {
			return a.Remaining() < b.Remaining()
		}
		return earlierArrival(a, b)
	}
}

func earlierArrival(a, b *model.Execution) bool {
	return a.Process.Arrival < b.Process.Arrival
}
