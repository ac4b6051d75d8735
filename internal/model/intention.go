package model

// Intention represents the zombie behaviour state.
type Intention int32

const (
	// IntentionIdle - alive, no committed target, standing still and scanning
	IntentionIdle Intention = iota
	// IntentionPursue - alive, moving toward the committed target
	IntentionPursue
	// IntentionDead - terminal, no perception, movement or attacks
	IntentionDead
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionPursue:
		return "PURSUE"
	case IntentionDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}

// IsAlive reports whether the intention belongs to a living agent.
func (i Intention) IsAlive() bool {
	return i != IntentionDead
}
