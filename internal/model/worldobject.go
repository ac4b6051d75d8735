package model

// WorldObject is the base for every object placed in the arena.
// Each object has an ObjectID, a Name, a Position, a Layer and zero or more colliders.
// Data holds the owning Zombie or Survivor (resolved to Target by the AI).
//
// Not thread-safe: mutated only from the simulation loop goroutine.
type WorldObject struct {
	objectID  uint32
	name      string
	position  Vec3
	layer     Layer
	colliders []*Collider
	Data      any
}

// NewWorldObject creates a new object in the arena.
func NewWorldObject(objectID uint32, name string, pos Vec3, layer Layer) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		position: pos,
		layer:    layer,
	}
}

// ObjectID returns unique object ID (immutable after creation).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name returns object name.
func (w *WorldObject) Name() string {
	return w.name
}

// Position returns a copy of the object position.
func (w *WorldObject) Position() Vec3 {
	return w.position
}

// SetPosition sets the object position.
// Objects registered in a world must be moved through World.MoveObject so the index follows.
func (w *WorldObject) SetPosition(pos Vec3) {
	w.position = pos
}

// Layer returns object classification.
func (w *WorldObject) Layer() Layer {
	return w.layer
}

// AddCollider attaches a sphere collider to the object and returns it.
func (w *WorldObject) AddCollider(radius float64, trigger bool) *Collider {
	c := newCollider(w, radius, trigger)
	w.colliders = append(w.colliders, c)
	return c
}

// Colliders returns attached colliders.
func (w *WorldObject) Colliders() []*Collider {
	return w.colliders
}

// DisableColliders disables every collider attached to the object.
func (w *WorldObject) DisableColliders() {
	for _, c := range w.colliders {
		c.SetEnabled(false)
	}
}

// HasEnabledCollider reports whether at least one collider is enabled.
func (w *WorldObject) HasEnabledCollider() bool {
	for _, c := range w.colliders {
		if c.Enabled() {
			return true
		}
	}
	return false
}
