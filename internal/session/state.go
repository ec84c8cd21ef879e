package session

// State is the session lifecycle state. The tagged enum makes invalid flag
// combinations (such as authenticated with no profile) unrepresentable.
type State int

const (
	// StateInitializing means the persisted token has not been resolved yet
	StateInitializing State = iota
	// StateAnonymous means no authenticated user
	StateAnonymous
	// StateAuthenticated means a user profile is present and current
	StateAuthenticated
	// StateTransitioning means a login attempt is in flight
	StateTransitioning
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateTransitioning:
		return "transitioning"
	default:
		return "unknown"
	}
}
