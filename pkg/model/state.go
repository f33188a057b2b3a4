package model

// ProcessState represents the lifecycle state of a process during a simulation.
type ProcessState string

const (
	ProcessStateUnadmitted ProcessState = "UNADMITTED"
	ProcessStateReady      ProcessState = "READY"
	ProcessStateRunning    ProcessState = "RUNNING"
	ProcessStateCompleted  ProcessState = "COMPLETED"
)

// String returns the string representation of the process state.
func (s ProcessState) String() string {
	return string(s)
}

// IsTerminal returns true if the process is in a final state.
func (s ProcessState) IsTerminal() bool {
	return s == ProcessStateCompleted
}

// ValidProcessTransitions defines the allowed state transitions for processes.
// RUNNING -> READY only happens under preemptive policies.
var ValidProcessTransitions = map[ProcessState][]ProcessState{
	ProcessStateUnadmitted: {ProcessStateReady},
	ProcessStateReady:      {ProcessStateRunning},
	ProcessStateRunning:    {ProcessStateReady, ProcessStateCompleted},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s ProcessState) CanTransitionTo(next ProcessState) bool {
	for _, allowed := range ValidProcessTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
