package types

// State of a single process action invocation.
type State int

const (
	StateIdle State = iota
	StateCheckingStatus
	StateNotProcessable
	StateProcessing
	StateDone
	StateFailed
)

var stateNames = map[State]string{
	StateIdle:           "idle",
	StateCheckingStatus: "checking-status",
	StateNotProcessable: "not-processable",
	StateProcessing:     "processing",
	StateDone:           "done",
	StateFailed:         "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
