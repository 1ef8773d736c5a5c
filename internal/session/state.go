package session

import "fmt"

// State is the load state of a session.
type State int

const (
	// StateAwaiting means no load is in progress and the session is waiting
	// for a file. Data from an earlier load may still be present.
	StateAwaiting State = iota

	// StateLoading means a load is in progress.
	StateLoading

	// StateReady means the last load succeeded.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaiting:
		return "awaiting-upload"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
