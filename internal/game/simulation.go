// Package game composes the arena: world, movement, spawning, AI and survivors,
// all driven by one scheduler on the simulation loop goroutine.
package game

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/udisondev/horde/internal/ai"
	"github.com/udisondev/horde/internal/config"
	"github.com/udisondev/horde/internal/db"
	"github.com/udisondev/horde/internal/fx"
	"github.com/udisondev/horde/internal/model"
	"github.com/udisondev/horde/internal/nav"
	"github.com/udisondev/horde/internal/sim"
	"github.com/udisondev/horde/internal/spawn"
	"github.com/udisondev/horde/internal/world"
)

// Recorder receives combat events. Implemented by db.Journal; must not block.
type Recorder interface {
	Record(ev db.CombatEvent) bool
}

// contactReceiver is the part of a controller that reacts to trigger overlaps.
type contactReceiver interface {
	OnContact(other *model.Collider)
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRecorder journals attacks and deaths.
func WithRecorder(r Recorder) Option {
	return func(s *Simulation) { s.recorder = r }
}

// WithSoundPlayer routes zombie sounds to p.
func WithSoundPlayer(p fx.SoundPlayer) Option {
	return func(s *Simulation) { s.sounds = p }
}

// WithRand sets the random source for spawn points.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) { s.rng = rng }
}

// Simulation is the arena composition root.
//
// Frame order: movement → contacts → AI Update → snapshot publishing, then due
// scheduler tasks (perception scans, corpse removal, respawns).
type Simulation struct {
	cfg    config.Simulation
	sched  *sim.Scheduler
	world  *world.World
	ticks  *ai.TickManager
	movers *nav.System
	spawns *spawn.Manager
	ids    *world.ObjectIDGenerator

	survivors []*model.Survivor
	stats     Stats

	recorder  Recorder
	sounds    fx.SoundPlayer
	rng       *rand.Rand
	snapshots chan Snapshot
}

// New builds the arena from cfg, places survivors and fills every spawn group.
func New(cfg config.Simulation, opts ...Option) (*Simulation, error) {
	mask, err := model.ParseLayers(cfg.AI.TargetLayers)
	if err != nil {
		return nil, fmt.Errorf("parsing target layers: %w", err)
	}
	policy, err := ai.ParseTargetPolicy(cfg.AI.TargetPolicy)
	if err != nil {
		return nil, fmt.Errorf("parsing target policy: %w", err)
	}

	s := &Simulation{
		cfg:       cfg,
		sched:     sim.NewScheduler(),
		world:     world.New(cfg.Arena.CellSize),
		ticks:     ai.NewTickManager(),
		movers:    nav.NewSystem(),
		ids:       world.NewObjectIDGenerator(),
		snapshots: make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.spawns = spawn.NewManager(s.sched, s.world, s.movers, s.ticks, s.ids)
	s.spawns.SetPerception(ai.Perception{
		Interval: cfg.AI.ScanInterval,
		Radius:   cfg.AI.ScanRadius,
		Mask:     mask,
		Policy:   policy,
	})
	s.spawns.SetSoundPlayer(s.sounds)
	s.spawns.SetHitObserver(s.onHit)
	s.spawns.SetDeathObserver(s.onZombieDeath)
	if s.rng != nil {
		s.spawns.SetRand(s.rng)
	}

	for _, sc := range cfg.Survivors {
		if err := s.AddSurvivor(sc); err != nil {
			return nil, err
		}
	}

	for _, tmpl := range cfg.Templates {
		if err := s.spawns.AddTemplate(tmpl); err != nil {
			return nil, err
		}
	}
	for i, sc := range cfg.Spawns {
		zone, err := spawn.NewZone(sc.Zone)
		if err != nil {
			return nil, fmt.Errorf("spawns[%d]: %w", i, err)
		}
		group := model.NewSpawn(s.spawns.NextSpawnID(), sc.Template, sc.Count, sc.CorpseDelay, sc.RespawnDelay)
		if _, err := s.spawns.AddGroup(group, zone); err != nil {
			return nil, fmt.Errorf("spawns[%d]: %w", i, err)
		}
	}

	s.sched.OnFrame(s.movers.Step)
	s.sched.OnFrame(s.contacts)
	s.sched.OnFrame(func(time.Duration) { s.ticks.UpdateAll() })
	s.sched.OnFrame(s.publish)

	if err := s.spawns.SpawnAll(); err != nil {
		return nil, err
	}

	slog.Info("simulation ready",
		"survivors", len(s.survivors),
		"zombies", len(s.spawns.Zombies()),
		"policy", policy,
		"targetLayers", mask)

	return s, nil
}

// AddSurvivor places a survivor in the arena.
func (s *Simulation) AddSurvivor(sc config.SurvivorConfig) error {
	survivor := model.NewSurvivor(s.ids.NextSurvivorID(), sc.Name, sc.Vec3(), sc.Health, sc.Radius)
	if err := s.world.AddObject(survivor.WorldObject); err != nil {
		return fmt.Errorf("adding survivor %q: %w", sc.Name, err)
	}
	survivor.SetDeathObserver(s.onSurvivorDeath)
	s.survivors = append(s.survivors, survivor)
	return nil
}

// Step advances the simulation by one frame of dt.
func (s *Simulation) Step(dt time.Duration) {
	s.sched.Advance(dt)
}

// Now returns simulation time.
func (s *Simulation) Now() time.Duration {
	return s.sched.Now()
}

// Snapshots delivers published snapshots. Buffered by one; the newest replaces an unread one.
func (s *Simulation) Snapshots() <-chan Snapshot {
	return s.snapshots
}

// Stats returns combat counters.
func (s *Simulation) Stats() Stats {
	st := s.stats
	for _, z := range s.spawns.Zombies() {
		if !z.IsDead() {
			st.ZombiesAlive++
		}
	}
	for _, sv := range s.survivors {
		if !sv.IsDead() {
			st.SurvivorsAlive++
		}
	}
	return st
}

// Survivors returns the survivors in creation order.
func (s *Simulation) Survivors() []*model.Survivor {
	return s.survivors
}

// Zombies returns every spawned zombie, corpses included.
func (s *Simulation) Zombies() []*model.Zombie {
	return s.spawns.Zombies()
}

// Controller returns the AI of a zombie.
func (s *Simulation) Controller(objectID uint32) (*ai.ZombieAI, bool) {
	ctrl, err := s.ticks.GetController(objectID)
	if err != nil {
		return nil, false
	}
	zombieAI, ok := ctrl.(*ai.ZombieAI)
	return zombieAI, ok
}

// World returns the spatial index.
func (s *Simulation) World() *world.World {
	return s.world
}

// contacts delivers trigger overlaps to zombie controllers.
func (s *Simulation) contacts(time.Duration) {
	for _, z := range s.spawns.Zombies() {
		trigger := z.Trigger()
		if z.IsDead() || !trigger.Enabled() {
			continue
		}
		ctrl, err := s.ticks.GetController(z.ObjectID())
		if err != nil {
			continue
		}
		receiver, ok := ctrl.(contactReceiver)
		if !ok {
			continue
		}
		for _, other := range s.world.Overlapping(trigger) {
			receiver.OnContact(other)
		}
	}
}

// publish sends a snapshot every snapshot_every frames without blocking the loop.
func (s *Simulation) publish(time.Duration) {
	every := uint64(max(s.cfg.Loop.SnapshotEvery, 1))
	if s.sched.Frame()%every != 0 {
		return
	}

	snap := s.Snapshot()
	select {
	case s.snapshots <- snap:
		return
	default:
	}

	// Replace the unread snapshot.
	select {
	case <-s.snapshots:
	default:
	}
	select {
	case s.snapshots <- snap:
	default:
	}
}

func (s *Simulation) onHit(hit ai.HitResult) {
	s.stats.Attacks++
	s.record(db.CombatEvent{
		Kind:       db.EventAttack,
		AttackerID: hit.AttackerID,
		TargetID:   hit.TargetID,
		Damage:     hit.Damage,
		Position:   hit.Point,
		SimTime:    hit.At,
	})
}

func (s *Simulation) onZombieDeath(death ai.DeathResult) {
	s.stats.ZombieDeaths++
	s.record(db.CombatEvent{
		Kind:     db.EventZombieDeath,
		TargetID: death.ObjectID,
		Position: death.Position,
		SimTime:  death.At,
	})
}

func (s *Simulation) onSurvivorDeath(survivor *model.Survivor) {
	s.stats.SurvivorDeaths++
	s.record(db.CombatEvent{
		Kind:     db.EventSurvivorDeath,
		TargetID: survivor.ObjectID(),
		Position: survivor.Position(),
		SimTime:  s.sched.Now(),
	})
}

func (s *Simulation) record(ev db.CombatEvent) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(ev)
}
