package fx

import (
	"log/slog"
	"math"
	"time"

	"github.com/udisondev/horde/internal/model"
)

// SoundPlayer plays one-shot sounds. Implemented by audio.SoundManager.
type SoundPlayer interface {
	Play(sound model.Sound)
}

// HitEffect is a placed and oriented impact effect.
// Yaw and Pitch (degrees) orient the effect along the surface normal.
type HitEffect struct {
	Point model.Vec3
	Yaw   float64
	Pitch float64
	At    time.Duration
}

// Feedback is the per-zombie presentation sink: it keeps the last hit effect and the
// has-target flag for the viewer and forwards sounds to the SoundPlayer.
type Feedback struct {
	objectID uint32
	clock    func() time.Duration
	sounds   SoundPlayer

	lastHit   HitEffect
	hits      int
	hasTarget bool
}

// NewFeedback creates feedback for objectID. clock stamps hit effects; sounds may be nil.
func NewFeedback(objectID uint32, clock func() time.Duration, sounds SoundPlayer) *Feedback {
	return &Feedback{
		objectID: objectID,
		clock:    clock,
		sounds:   sounds,
	}
}

// PlayHitEffect places the impact effect at point, oriented along normal.
func (f *Feedback) PlayHitEffect(point, normal model.Vec3) {
	yaw, pitch := LookRotation(normal)
	f.lastHit = HitEffect{
		Point: point,
		Yaw:   yaw,
		Pitch: pitch,
	}
	if f.clock != nil {
		f.lastHit.At = f.clock()
	}
	f.hits++
}

// PlaySound forwards sound to the player.
func (f *Feedback) PlaySound(sound model.Sound) {
	if f.sounds == nil {
		return
	}
	f.sounds.Play(sound)
}

// SetHasTarget stores the has-target flag. Only changes are logged.
func (f *Feedback) SetHasTarget(hasTarget bool) {
	if f.hasTarget == hasTarget {
		return
	}
	f.hasTarget = hasTarget
	slog.Debug("has-target changed", "objectID", f.objectID, "hasTarget", hasTarget)
}

// HasTarget returns the last published flag.
func (f *Feedback) HasTarget() bool {
	return f.hasTarget
}

// LastHit returns the most recent hit effect and whether any was played.
func (f *Feedback) LastHit() (HitEffect, bool) {
	return f.lastHit, f.hits > 0
}

// Hits returns number of hit effects played.
func (f *Feedback) Hits() int {
	return f.hits
}

// LookRotation returns yaw and pitch in degrees for a forward direction.
// Yaw is measured in the X/Y plane from +X toward +Y, pitch from the plane toward +Z.
// A zero vector yields (0, 0).
func LookRotation(dir model.Vec3) (yaw, pitch float64) {
	if dir.LengthSquared() == 0 {
		return 0, 0
	}
	n := dir.Normalize()
	yaw = math.Atan2(n.Y, n.X) * 180 / math.Pi
	pitch = math.Asin(n.Z) * 180 / math.Pi
	return yaw, pitch
}
