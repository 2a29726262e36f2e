package relay

// State is a step of the relay agent's lifecycle.
type State int

const (
	StateAwaitingCredentials State = iota
	StateVerifying
	StateVerified
	StatePollLoop
	StateRejected
)

func (s State) String() string {
	switch s {
	case StateAwaitingCredentials:
		return "awaiting_credentials"
	case StateVerifying:
		return "verifying"
	case StateVerified:
		return "verified"
	case StatePollLoop:
		return "poll_loop"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
