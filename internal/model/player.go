package model

import "log/slog"

// Survivor is a passive target: it has health and a body collider and does not act.
type Survivor struct {
	*WorldObject
	*LivingEntity

	hits       int
	onDeathObs func(*Survivor)
}

// NewSurvivor creates a survivor at pos.
func NewSurvivor(objectID uint32, name string, pos Vec3, health, radius float64) *Survivor {
	s := &Survivor{
		WorldObject:  NewWorldObject(objectID, name, pos, LayerSurvivor),
		LivingEntity: NewLivingEntity(health),
	}
	s.AddCollider(radius, false)
	s.SetDamageHook(s.onDamage)
	s.SetDeathHook(s.onDeath)
	s.Data = s
	return s
}

// SetDeathObserver sets a callback run after the survivor dies.
func (s *Survivor) SetDeathObserver(fn func(*Survivor)) {
	s.onDeathObs = fn
}

// Hits returns how many hits the survivor received while alive.
func (s *Survivor) Hits() int {
	return s.hits
}

func (s *Survivor) onDamage(amount float64, _, _ Vec3) {
	if s.IsDead() {
		return
	}
	s.hits++
	slog.Debug("survivor hit",
		"objectID", s.ObjectID(),
		"name", s.Name(),
		"damage", amount,
		"health", s.Health())
}

func (s *Survivor) onDeath() {
	s.DisableColliders()
	slog.Info("survivor died",
		"objectID", s.ObjectID(),
		"name", s.Name(),
		"hits", s.hits)

	if s.onDeathObs != nil {
		s.onDeathObs(s)
	}
}
