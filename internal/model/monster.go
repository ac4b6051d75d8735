package model

import "time"

// Zombie is the hostile agent: a world object with health, a body collider,
// an attack trigger and stats applied once from a ZombieTemplate.
type Zombie struct {
	*WorldObject
	*LivingEntity

	templateName   string
	damage         float64
	speed          float64
	attackCooldown time.Duration
	skinColor      string

	body    *Collider
	trigger *Collider

	intention Intention
	spawn     *Spawn
}

// NewZombie creates a zombie at pos with stats from tmpl.
// WorldObject.Data points back at the zombie so it resolves as a Target.
func NewZombie(objectID uint32, pos Vec3, tmpl ZombieTemplate) *Zombie {
	z := &Zombie{
		WorldObject:  NewWorldObject(objectID, tmpl.Name, pos, LayerZombie),
		LivingEntity: NewLivingEntity(tmpl.Health),
		intention:    IntentionIdle,
	}
	z.body = z.AddCollider(tmpl.Radius, false)
	z.trigger = z.AddCollider(tmpl.AttackReach, true)
	z.Setup(tmpl)
	z.Data = z
	return z
}

// Setup applies the spawn configuration: health, damage, speed, cooldown, skin colour.
func (z *Zombie) Setup(tmpl ZombieTemplate) {
	z.templateName = tmpl.Name
	z.SetMaxHealth(tmpl.Health)
	z.damage = tmpl.Damage
	z.speed = tmpl.Speed
	z.attackCooldown = tmpl.AttackCooldown
	z.skinColor = tmpl.SkinColor
}

// TemplateName returns the name of the applied template.
func (z *Zombie) TemplateName() string { return z.templateName }

// Damage returns attack damage.
func (z *Zombie) Damage() float64 { return z.damage }

// Speed returns movement speed (units per second).
func (z *Zombie) Speed() float64 { return z.speed }

// AttackCooldown returns the minimum interval between attacks.
func (z *Zombie) AttackCooldown() time.Duration { return z.attackCooldown }

// SkinColor returns the cosmetic colour.
func (z *Zombie) SkinColor() string { return z.skinColor }

// Body returns the blocking body collider.
func (z *Zombie) Body() *Collider { return z.body }

// Trigger returns the attack trigger collider.
func (z *Zombie) Trigger() *Collider { return z.trigger }

// Intention returns current behaviour state.
func (z *Zombie) Intention() Intention { return z.intention }

// SetIntention sets behaviour state.
func (z *Zombie) SetIntention(i Intention) { z.intention = i }

// Spawn returns the spawn point this zombie came from (nil for ad-hoc zombies).
func (z *Zombie) Spawn() *Spawn { return z.spawn }

// SetSpawn sets spawn point reference.
func (z *Zombie) SetSpawn(s *Spawn) { z.spawn = s }
