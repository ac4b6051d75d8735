package model

// Target is anything a zombie can pursue and damage.
// Implemented by Zombie and Survivor; resolved from WorldObject.Data.
type Target interface {
	ObjectID() uint32
	Position() Vec3
	IsDead() bool
	OnDamage(amount float64, point, normal Vec3)
}

// TargetOf returns the Target capability of a world object, if it has one.
func TargetOf(obj *WorldObject) (Target, bool) {
	if obj == nil {
		return nil, false
	}
	t, ok := obj.Data.(Target)
	return t, ok
}

// Sound identifies a one-shot sound cue.
type Sound int32

const (
	SoundHit Sound = iota
	SoundDeath
)

// String returns sound name.
func (s Sound) String() string {
	switch s {
	case SoundHit:
		return "hit"
	case SoundDeath:
		return "death"
	default:
		return "unknown"
	}
}
