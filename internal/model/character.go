package model

import "sync"

// DamageHook runs before damage is applied to a LivingEntity.
// It sees the pre-damage state, so IsDead() reports whether the entity was already dead.
type DamageHook func(amount float64, point, normal Vec3)

// LivingEntity is the damage-application capability shared by everything that can die.
// Owners compose it and customise behaviour through the damage and death hooks.
//
// Invariants: 0 <= health <= maxHealth, health == 0 ⇔ dead, dead never reverts.
type LivingEntity struct {
	health    float64
	maxHealth float64
	dead      bool

	deathOnce sync.Once // death hook fires exactly once

	onDamage DamageHook
	onDeath  func()
}

// NewLivingEntity creates an entity at full health.
func NewLivingEntity(maxHealth float64) *LivingEntity {
	return &LivingEntity{
		health:    maxHealth,
		maxHealth: maxHealth,
	}
}

// Health returns current health.
func (e *LivingEntity) Health() float64 {
	return e.health
}

// MaxHealth returns maximum health.
func (e *LivingEntity) MaxHealth() float64 {
	return e.maxHealth
}

// SetMaxHealth sets maximum health and refills current health.
// Used by spawn setup; values below 1 are raised to 1.
func (e *LivingEntity) SetMaxHealth(maxHealth float64) {
	e.maxHealth = max(maxHealth, 1)
	e.health = e.maxHealth
}

// HealthPercentage returns health as 0..100.
func (e *LivingEntity) HealthPercentage() float64 {
	if e.maxHealth <= 0 {
		return 0
	}
	return e.health / e.maxHealth * 100
}

// IsDead reports whether the entity has died.
func (e *LivingEntity) IsDead() bool {
	return e.dead
}

// SetDamageHook sets the hook run on every OnDamage call.
func (e *LivingEntity) SetDamageHook(fn DamageHook) {
	e.onDamage = fn
}

// SetDeathHook sets the hook run once when health reaches zero.
func (e *LivingEntity) SetDeathHook(fn func()) {
	e.onDeath = fn
}

// OnDamage receives a hit: runs the damage hook, then applies the damage.
func (e *LivingEntity) OnDamage(amount float64, point, normal Vec3) {
	if e.onDamage != nil {
		e.onDamage(amount, point, normal)
	}
	e.ApplyDamage(amount)
}

// ApplyDamage decrements health, clamps at zero and triggers death when it gets there.
// No-op when already dead. Negative amounts are ignored.
func (e *LivingEntity) ApplyDamage(amount float64) {
	if e.dead || amount <= 0 {
		return
	}

	e.health = max(e.health-amount, 0)
	if e.health == 0 {
		e.Die()
	}
}

// Die marks the entity dead and fires the death hook. Returns true if this call
// performed the death (first caller wins).
func (e *LivingEntity) Die() bool {
	executed := false
	e.deathOnce.Do(func() {
		e.health = 0
		e.dead = true
		executed = true
		if e.onDeath != nil {
			e.onDeath()
		}
	})
	return executed
}
