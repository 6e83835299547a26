package domain

// AdState represents the lifecycle state of a single ad session.
type AdState int

const (
	StateUninitialized AdState = iota
	StateLoaded
	StatePlaying
	StatePaused
	StateStopped
)

// String returns a human-readable representation of the state.
func (s AdState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateLoaded:
		return "Loaded"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}
