package ai

import "github.com/udisondev/horde/internal/model"

// Controller represents an AI controller driven by the simulation loop.
type Controller interface {
	// Start registers the controller's periodic work and begins behaviour.
	Start()

	// Stop halts behaviour; periodic work ends on its next recurrence.
	Stop()

	// Update performs the per-frame evaluation.
	Update()

	// CurrentIntention returns current behaviour state.
	CurrentIntention() model.Intention
}
