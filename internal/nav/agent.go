package nav

import (
	"time"

	"github.com/udisondev/horde/internal/model"
)

// MoveFunc relocates an object. Usually World.MoveObject so the spatial index follows.
type MoveFunc func(obj *model.WorldObject, pos model.Vec3)

// Agent steers one object in a straight line toward its destination at constant speed.
// The arena has no obstacles, so no path is planned.
//
// Agent starts stopped. RequestMove enables movement, Stop halts it.
type Agent struct {
	obj              *model.WorldObject
	speed            float64 // units per second
	stoppingDistance float64
	destination      model.Vec3
	stopped          bool
	moveFunc         MoveFunc
}

// NewAgent creates a stopped agent for obj.
func NewAgent(obj *model.WorldObject, speed float64, moveFunc MoveFunc) *Agent {
	if moveFunc == nil {
		moveFunc = func(obj *model.WorldObject, pos model.Vec3) { obj.SetPosition(pos) }
	}
	return &Agent{
		obj:         obj,
		speed:       speed,
		destination: obj.Position(),
		stopped:     true,
		moveFunc:    moveFunc,
	}
}

// SetStoppingDistance sets how close to the destination the agent halts.
func (a *Agent) SetStoppingDistance(d float64) {
	a.stoppingDistance = max(d, 0)
}

// RequestMove sets a destination and enables movement.
func (a *Agent) RequestMove(dest model.Vec3) {
	a.destination = dest
	a.stopped = false
}

// Stop halts movement.
func (a *Agent) Stop() {
	a.stopped = true
}

// IsStopped reports whether movement is halted.
func (a *Agent) IsStopped() bool {
	return a.stopped
}

// Destination returns the last requested destination.
func (a *Agent) Destination() model.Vec3 {
	return a.destination
}

// ObjectID returns steered object ID.
func (a *Agent) ObjectID() uint32 {
	return a.obj.ObjectID()
}

// RemainingDistance returns distance left to the stopping point, 0 once arrived.
func (a *Agent) RemainingDistance() float64 {
	return max(a.obj.Position().Distance(a.destination)-a.stoppingDistance, 0)
}

// Step advances the agent by dt. A stopped agent does not move.
// The agent keeps its destination after arriving, so a target that moves away is followed.
func (a *Agent) Step(dt time.Duration) {
	if a.stopped || dt <= 0 {
		return
	}

	remaining := a.RemainingDistance()
	if remaining == 0 {
		return
	}

	pos := a.obj.Position()
	dir := a.destination.Sub(pos).Normalize()
	travel := min(a.speed*dt.Seconds(), remaining)

	a.moveFunc(a.obj, pos.Add(dir.Scale(travel)))
}
