package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status    string    `json:"status"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}

// SimulationRequest asks the API to run one policy over a process list.
type SimulationRequest struct {
	Policy    string    `json:"policy"`
	Quantum   int       `json:"quantum,omitempty"`
	Direction string    `json:"direction,omitempty"`
	Expr      string    `json:"expr,omitempty"`
	Processes []Process `json:"processes"`
}

// ComparisonRequest asks the API to run several policies over one process list.
// An empty Policies list means every built-in policy that needs no expression.
type ComparisonRequest struct {
	Policies  []string  `json:"policies,omitempty"`
	Quantum   int       `json:"quantum,omitempty"`
	Direction string    `json:"direction,omitempty"`
	Processes []Process `json:"processes"`
}

// ComparisonEntry is one row of a comparison response.
type ComparisonEntry struct {
	Policy  string  `json:"policy"`
	Summary Summary `json:"summary"`
}
