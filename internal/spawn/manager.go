package spawn

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/udisondev/horde/internal/ai"
	"github.com/udisondev/horde/internal/fx"
	"github.com/udisondev/horde/internal/model"
	"github.com/udisondev/horde/internal/nav"
	"github.com/udisondev/horde/internal/sim"
	"github.com/udisondev/horde/internal/world"
)

// Group is a spawn with the zone its zombies appear in.
type Group struct {
	Spawn *model.Spawn
	Zone  Zone
}

// Manager spawns zombies from templates, wires each one to its movement, presentation
// and AI, removes corpses and schedules respawns.
//
// Not thread-safe: runs on the simulation loop goroutine.
type Manager struct {
	sched     *sim.Scheduler
	world     *world.World
	movers    *nav.System
	aiManager *ai.TickManager
	ids       *world.ObjectIDGenerator
	rng       *rand.Rand

	templates map[string]model.ZombieTemplate
	groups    []*Group
	feedback  map[uint32]*fx.Feedback // objectID → presentation state
	respawns  map[int64][]*sim.Task   // spawnID → pending respawn tasks
	corpses   map[uint32]*sim.Task    // objectID → pending corpse removal

	perception    ai.Perception
	sounds        fx.SoundPlayer
	hitObserver   func(ai.HitResult)
	deathObserver func(ai.DeathResult)

	nextSpawnID int64
}

// NewManager creates new spawn manager
func NewManager(
	sched *sim.Scheduler,
	w *world.World,
	movers *nav.System,
	aiManager *ai.TickManager,
	ids *world.ObjectIDGenerator,
) *Manager {
	return &Manager{
		sched:      sched,
		world:      w,
		movers:     movers,
		aiManager:  aiManager,
		ids:        ids,
		rng:        rand.New(rand.NewPCG(1, 2)),
		templates:  make(map[string]model.ZombieTemplate),
		feedback:   make(map[uint32]*fx.Feedback),
		respawns:   make(map[int64][]*sim.Task),
		corpses:    make(map[uint32]*sim.Task),
		perception: ai.DefaultPerception(),
	}
}

// SetRand sets the random source for spawn points.
func (m *Manager) SetRand(rng *rand.Rand) {
	m.rng = rng
}

// SetPerception sets perception applied to zombies spawned from now on.
func (m *Manager) SetPerception(p ai.Perception) {
	m.perception = p
}

// SetSoundPlayer sets the sound output for zombie feedback (nil = silent).
func (m *Manager) SetSoundPlayer(sounds fx.SoundPlayer) {
	m.sounds = sounds
}

// SetHitObserver sets the observer attached to every spawned zombie's attacks.
func (m *Manager) SetHitObserver(fn func(ai.HitResult)) {
	m.hitObserver = fn
}

// SetDeathObserver sets the observer attached to every spawned zombie's death.
func (m *Manager) SetDeathObserver(fn func(ai.DeathResult)) {
	m.deathObserver = fn
}

// AddTemplate registers a zombie template by name.
func (m *Manager) AddTemplate(tmpl model.ZombieTemplate) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("adding template: %w", err)
	}
	if _, exists := m.templates[tmpl.Name]; exists {
		return fmt.Errorf("template %q already registered", tmpl.Name)
	}
	m.templates[tmpl.Name] = tmpl
	return nil
}

// AddGroup creates a spawn group for a registered template.
func (m *Manager) AddGroup(spawn *model.Spawn, zone Zone) (*Group, error) {
	if _, ok := m.templates[spawn.TemplateName()]; !ok {
		return nil, fmt.Errorf("spawn %d: unknown template %q", spawn.SpawnID(), spawn.TemplateName())
	}
	if spawn.MaximumCount() <= 0 {
		return nil, fmt.Errorf("spawn %d: maximum count must be > 0", spawn.SpawnID())
	}
	g := &Group{Spawn: spawn, Zone: zone}
	m.groups = append(m.groups, g)
	return g, nil
}

// NextSpawnID returns a fresh spawn ID for AddGroup callers.
func (m *Manager) NextSpawnID() int64 {
	m.nextSpawnID++
	return m.nextSpawnID
}

// DoSpawn spawns one zombie for group.
// Returns spawned zombie or error
func (m *Manager) DoSpawn(g *Group) (*model.Zombie, error) {
	spawn := g.Spawn
	if spawn.IsFull() {
		return nil, fmt.Errorf("spawn %d is full (%d/%d)", spawn.SpawnID(), spawn.CurrentCount(), spawn.MaximumCount())
	}

	tmpl, ok := m.templates[spawn.TemplateName()]
	if !ok {
		return nil, fmt.Errorf("spawn %d: unknown template %q", spawn.SpawnID(), spawn.TemplateName())
	}

	objectID := m.ids.NextZombieID()
	zombie := model.NewZombie(objectID, g.Zone.RandomPoint(m.rng), tmpl)
	zombie.SetSpawn(spawn)

	if err := m.world.AddObject(zombie.WorldObject); err != nil {
		return nil, fmt.Errorf("adding zombie %d to world: %w", objectID, err)
	}
	spawn.AddZombie(zombie)

	agent := nav.NewAgent(zombie.WorldObject, tmpl.Speed, m.world.MoveObject)
	agent.SetStoppingDistance(tmpl.Radius)
	m.movers.Add(agent)

	feedback := fx.NewFeedback(objectID, m.sched.Now, m.sounds)
	m.feedback[objectID] = feedback

	zombieAI := ai.NewZombieAI(zombie, m.sched, m.world.QueryNearby, m.world.GetObject, agent)
	zombieAI.SetPerception(m.perception)
	zombieAI.SetPresenter(feedback)
	zombieAI.SetHitObserver(m.hitObserver)
	zombieAI.SetDeathObserver(m.deathObserver)
	zombieAI.SetDeathFunc(m.onZombieDeath)
	m.aiManager.Register(objectID, zombieAI)

	slog.Info("zombie spawned",
		"objectID", objectID,
		"template", tmpl.Name,
		"spawnID", spawn.SpawnID(),
		"position", zombie.Position())

	return zombie, nil
}

// DespawnZombie removes zombie from the arena: AI, movement, world index and spawn list.
func (m *Manager) DespawnZombie(zombie *model.Zombie) {
	objectID := zombie.ObjectID()

	m.aiManager.Unregister(objectID)
	m.movers.Remove(objectID)
	m.world.RemoveObject(objectID)
	delete(m.feedback, objectID)

	if task, ok := m.corpses[objectID]; ok {
		task.Stop()
		delete(m.corpses, objectID)
	}

	spawn := zombie.Spawn()
	if spawn == nil {
		slog.Warn("despawning zombie without spawn", "objectID", objectID)
		return
	}
	spawn.RemoveZombie(zombie)

	slog.Info("zombie despawned",
		"objectID", objectID,
		"template", zombie.TemplateName(),
		"spawnID", spawn.SpawnID())
}

// SpawnAll fills every group up to its maximum count.
func (m *Manager) SpawnAll() error {
	count := 0
	var errs []error

	for _, g := range m.groups {
		for !g.Spawn.IsFull() {
			if _, err := m.DoSpawn(g); err != nil {
				errs = append(errs, err)
				slog.Error("failed to spawn zombie",
					"spawnID", g.Spawn.SpawnID(),
					"template", g.Spawn.TemplateName(),
					"error", err)
				break
			}
			count++
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("spawning all zombies (%d spawned): %w", count, errors.Join(errs...))
	}

	slog.Info("all zombies spawned", "count", count, "groups", len(m.groups))
	return nil
}

// Groups returns spawn groups in registration order.
func (m *Manager) Groups() []*Group {
	return slices.Clone(m.groups)
}

// Zombies returns every zombie currently owned by a spawn (alive or corpse).
func (m *Manager) Zombies() []*model.Zombie {
	var result []*model.Zombie
	for _, g := range m.groups {
		result = append(result, g.Spawn.Zombies()...)
	}
	return result
}

// Feedback returns the presentation state of a spawned zombie.
func (m *Manager) Feedback(objectID uint32) (*fx.Feedback, bool) {
	f, ok := m.feedback[objectID]
	return f, ok
}

func (m *Manager) group(spawn *model.Spawn) (*Group, bool) {
	for _, g := range m.groups {
		if g.Spawn == spawn {
			return g, true
		}
	}
	return nil, false
}
