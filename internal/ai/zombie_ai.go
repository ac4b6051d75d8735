package ai

import (
	"log/slog"
	"time"

	"github.com/udisondev/horde/internal/model"
	"github.com/udisondev/horde/internal/sim"
)

// ScanFunc returns objects whose enabled colliders intersect the sphere (origin, radius)
// and whose layer is in mask. Result order is the collaborator's; the AI keeps it.
type ScanFunc func(origin model.Vec3, radius float64, mask model.Layer) []*model.WorldObject

// GetObjectFunc looks up a WorldObject by objectID.
type GetObjectFunc func(objectID uint32) (*model.WorldObject, bool)

// Mover is the path-following collaborator. The AI never computes paths itself.
type Mover interface {
	// RequestMove sets a destination and enables movement.
	RequestMove(dest model.Vec3)
	// Stop halts movement and drops the current destination.
	Stop()
	// IsStopped reports whether movement is halted.
	IsStopped() bool
}

// Presenter receives fire-and-forget presentation events.
type Presenter interface {
	PlayHitEffect(point, normal model.Vec3)
	PlaySound(sound model.Sound)
	SetHasTarget(hasTarget bool)
}

// HitResult describes one successful zombie attack.
type HitResult struct {
	AttackerID uint32
	TargetID   uint32
	Damage     float64
	Point      model.Vec3
	Normal     model.Vec3
	At         time.Duration
}

// DeathResult describes a zombie death.
type DeathResult struct {
	ObjectID uint32
	Position model.Vec3
	At       time.Duration
}

// Perception holds scan settings.
type Perception struct {
	Interval time.Duration
	Radius   float64
	Mask     model.Layer
	Policy   TargetPolicy
}

// DefaultPerception scans every 250ms within 20 units for survivors, first candidate wins.
func DefaultPerception() Perception {
	return Perception{
		Interval: 250 * time.Millisecond,
		Radius:   20,
		Mask:     model.LayerSurvivor,
		Policy:   PolicyFirst,
	}
}

// ZombieAI implements the hostile agent behaviour.
// State machine: IDLE (scan) ⇄ PURSUE (path to target), any → DEAD (terminal).
//
// Perception runs as a scheduler task on a fixed cadence while the zombie is alive;
// Update runs every frame; OnContact runs every frame per overlapping collider.
// All methods must be called from the simulation loop goroutine.
type ZombieAI struct {
	zombie     *model.Zombie
	sched      *sim.Scheduler
	perception Perception
	isRunning  bool

	// targetID is a weak reference: resolved through getObjectFunc on every use,
	// so a despawned target simply stops resolving.
	targetID   uint32
	lastAttack time.Duration
	scanTask   *sim.Task

	scanFunc      ScanFunc
	getObjectFunc GetObjectFunc
	mover         Mover
	presenter     Presenter

	hitObserver   func(HitResult)
	deathObserver func(DeathResult)
	deathFunc     func(*model.Zombie)
}

// NewZombieAI creates a controller for zombie and installs its damage and death hooks.
func NewZombieAI(
	zombie *model.Zombie,
	sched *sim.Scheduler,
	scanFunc ScanFunc,
	getObjectFunc GetObjectFunc,
	mover Mover,
) *ZombieAI {
	ai := &ZombieAI{
		zombie:        zombie,
		sched:         sched,
		perception:    DefaultPerception(),
		scanFunc:      scanFunc,
		getObjectFunc: getObjectFunc,
		mover:         mover,
		presenter:     nopPresenter{},
		lastAttack:    sched.Now() - zombie.AttackCooldown(),
	}
	zombie.SetDamageHook(ai.onDamage)
	zombie.SetDeathHook(ai.onDeath)
	return ai
}

// SetPerception overrides scan settings. Must be called before Start.
func (ai *ZombieAI) SetPerception(p Perception) {
	ai.perception = p
}

// SetPresenter sets the presentation collaborator.
func (ai *ZombieAI) SetPresenter(p Presenter) {
	if p == nil {
		p = nopPresenter{}
	}
	ai.presenter = p
}

// SetHitObserver sets a callback for successful attacks (nil in tests).
func (ai *ZombieAI) SetHitObserver(fn func(HitResult)) {
	ai.hitObserver = fn
}

// SetDeathObserver sets a callback for the death event.
func (ai *ZombieAI) SetDeathObserver(fn func(DeathResult)) {
	ai.deathObserver = fn
}

// SetDeathFunc sets the callback that hands the corpse to the spawn layer.
func (ai *ZombieAI) SetDeathFunc(fn func(*model.Zombie)) {
	ai.deathFunc = fn
}

// Zombie returns the controlled zombie.
func (ai *ZombieAI) Zombie() *model.Zombie {
	return ai.zombie
}

// Start starts the perception task. The first scan runs immediately.
func (ai *ZombieAI) Start() {
	if ai.isRunning || ai.zombie.IsDead() {
		return
	}
	ai.isRunning = true
	ai.scanTask = ai.sched.Every(ai.perception.Interval, ai.alive, ai.updatePath)

	if IsDebugEnabled() {
		slog.Debug("zombie AI started",
			"zombie", ai.zombie.Name(),
			"objectID", ai.zombie.ObjectID(),
			"scanRadius", ai.perception.Radius,
			"policy", ai.perception.Policy)
	}
}

// Stop stops the controller (despawn). Movement halts and the target is dropped.
func (ai *ZombieAI) Stop() {
	ai.isRunning = false
	if ai.scanTask != nil {
		ai.scanTask.Stop()
	}
	ai.mover.Stop()
	ai.targetID = 0
	if !ai.zombie.IsDead() {
		ai.setIntention(model.IntentionIdle)
	}

	if IsDebugEnabled() {
		slog.Debug("zombie AI stopped",
			"zombie", ai.zombie.Name(),
			"objectID", ai.zombie.ObjectID())
	}
}

// CurrentIntention returns current behaviour state.
func (ai *ZombieAI) CurrentIntention() model.Intention {
	return ai.zombie.Intention()
}

// TargetID returns the committed target ID (0 if none was ever acquired).
// The reference may be stale; use HasTarget to check validity.
func (ai *ZombieAI) TargetID() uint32 {
	return ai.targetID
}

// LastAttack returns simulation time of the last attack.
func (ai *ZombieAI) LastAttack() time.Duration {
	return ai.lastAttack
}

// HasTarget reports whether the committed target still resolves and is alive.
// Recomputed on every call.
func (ai *ZombieAI) HasTarget() bool {
	_, ok := ai.currentTarget()
	return ok
}

// Update performs the per-frame evaluation: publishes the has-target flag and halts
// movement as soon as the target is found invalid, without waiting for the next scan.
func (ai *ZombieAI) Update() {
	if !ai.alive() {
		return
	}

	hasTarget := ai.HasTarget()
	ai.presenter.SetHasTarget(hasTarget)

	if !hasTarget && !ai.mover.IsStopped() {
		ai.mover.Stop()
		ai.setIntention(model.IntentionIdle)
	}
}

// OnContact is called every frame while other overlaps the zombie's trigger.
// Attacks when the cooldown has elapsed and other belongs to the committed target.
func (ai *ZombieAI) OnContact(other *model.Collider) {
	if !ai.alive() || other == nil {
		return
	}

	now := ai.sched.Now()
	if now < ai.lastAttack+ai.zombie.AttackCooldown() {
		return
	}

	obj := other.Owner()
	target, ok := model.TargetOf(obj)
	if !ok {
		return
	}
	if ai.targetID == 0 || obj.ObjectID() != ai.targetID {
		return
	}

	ai.lastAttack = now

	// Approximate strike point and direction from collider geometry.
	selfPos := ai.zombie.Position()
	point := other.ClosestPoint(selfPos)
	normal := selfPos.Sub(obj.Position())

	target.OnDamage(ai.zombie.Damage(), point, normal)

	if IsDebugEnabled() {
		slog.Debug("zombie attacked",
			"zombie", ai.zombie.Name(),
			"objectID", ai.zombie.ObjectID(),
			"targetID", obj.ObjectID(),
			"damage", ai.zombie.Damage(),
			"simTime", now)
	}

	if ai.hitObserver != nil {
		ai.hitObserver(HitResult{
			AttackerID: ai.zombie.ObjectID(),
			TargetID:   obj.ObjectID(),
			Damage:     ai.zombie.Damage(),
			Point:      point,
			Normal:     normal,
			At:         now,
		})
	}
}

// alive is the perception task condition.
func (ai *ZombieAI) alive() bool {
	return ai.isRunning && !ai.zombie.IsDead()
}

// updatePath is one scan tick: chase the committed target, or stand still and look for one.
func (ai *ZombieAI) updatePath() {
	if target, ok := ai.currentTarget(); ok {
		ai.pursue(target)
		return
	}

	ai.mover.Stop()
	ai.setIntention(model.IntentionIdle)
	ai.scan()
}

// scan queries the surroundings and commits to a candidate chosen by policy.
func (ai *ZombieAI) scan() {
	if ai.scanFunc == nil {
		return
	}

	self := ai.zombie.WorldObject
	candidates := ai.scanFunc(self.Position(), ai.perception.Radius, ai.perception.Mask)

	chosen := selectTarget(ai.perception.Policy, self, candidates)
	if chosen == nil {
		return
	}

	target, _ := model.TargetOf(chosen)
	ai.targetID = chosen.ObjectID()

	if IsDebugEnabled() {
		slog.Debug("zombie acquired target",
			"zombie", ai.zombie.Name(),
			"objectID", ai.zombie.ObjectID(),
			"targetID", ai.targetID,
			"candidates", len(candidates))
	}

	ai.pursue(target)
}

func (ai *ZombieAI) pursue(target model.Target) {
	ai.setIntention(model.IntentionPursue)
	ai.mover.RequestMove(target.Position())
}

func (ai *ZombieAI) currentTarget() (model.Target, bool) {
	if ai.targetID == 0 || ai.getObjectFunc == nil {
		return nil, false
	}
	obj, found := ai.getObjectFunc(ai.targetID)
	if !found {
		return nil, false
	}
	target, ok := model.TargetOf(obj)
	if !ok || target.IsDead() {
		return nil, false
	}
	return target, true
}

// onDamage is the zombie's damage hook: hit feedback only, no state change.
// The base LivingEntity applies the health change right after.
func (ai *ZombieAI) onDamage(amount float64, point, normal model.Vec3) {
	if ai.zombie.IsDead() {
		return
	}
	ai.presenter.PlayHitEffect(point, normal)
	ai.presenter.PlaySound(model.SoundHit)

	if IsDebugEnabled() {
		slog.Debug("zombie hit",
			"zombie", ai.zombie.Name(),
			"objectID", ai.zombie.ObjectID(),
			"damage", amount,
			"health", ai.zombie.Health())
	}
}

// onDeath is the zombie's death hook; LivingEntity guarantees a single call.
func (ai *ZombieAI) onDeath() {
	ai.zombie.DisableColliders()
	ai.mover.Stop()
	ai.presenter.PlaySound(model.SoundDeath)
	ai.presenter.SetHasTarget(false)
	ai.setIntention(model.IntentionDead)

	now := ai.sched.Now()
	slog.Info("zombie died",
		"zombie", ai.zombie.Name(),
		"objectID", ai.zombie.ObjectID(),
		"simTime", now)

	if ai.deathObserver != nil {
		ai.deathObserver(DeathResult{
			ObjectID: ai.zombie.ObjectID(),
			Position: ai.zombie.Position(),
			At:       now,
		})
	}
	if ai.deathFunc != nil {
		ai.deathFunc(ai.zombie)
	}
}

func (ai *ZombieAI) setIntention(intention model.Intention) {
	old := ai.zombie.Intention()
	if old == model.IntentionDead {
		return
	}
	ai.zombie.SetIntention(intention)

	if old != intention && IsDebugEnabled() {
		slog.Debug("zombie intention changed",
			"zombie", ai.zombie.Name(),
			"objectID", ai.zombie.ObjectID(),
			"from", old,
			"to", intention)
	}
}

type nopPresenter struct{}

func (nopPresenter) PlayHitEffect(model.Vec3, model.Vec3) {}
func (nopPresenter) PlaySound(model.Sound)                {}
func (nopPresenter) SetHasTarget(bool)                    {}
