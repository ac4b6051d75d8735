package game

import (
	"time"

	"github.com/udisondev/horde/internal/model"
)

// EntityKind distinguishes snapshot entities.
type EntityKind int32

const (
	KindSurvivor EntityKind = iota
	KindZombie
)

// String returns kind name.
func (k EntityKind) String() string {
	switch k {
	case KindSurvivor:
		return "survivor"
	case KindZombie:
		return "zombie"
	default:
		return "unknown"
	}
}

// Entity is an immutable view of one arena object, safe to hand to other goroutines.
type Entity struct {
	ObjectID  uint32
	Kind      EntityKind
	Name      string
	Position  model.Vec3
	Health    float64
	MaxHealth float64
	Dead      bool
	Intention model.Intention // zombies only
	HasTarget bool            // zombies only
	Color     string          // zombie skin colour
	Hits      int             // survivors: hits taken
}

// Stats holds combat counters.
type Stats struct {
	Attacks        int
	ZombieDeaths   int
	SurvivorDeaths int
	ZombiesAlive   int
	SurvivorsAlive int
}

// Snapshot is the arena state at one frame.
type Snapshot struct {
	Time     time.Duration
	Frame    uint64
	Width    float64
	Height   float64
	Entities []Entity
	Stats    Stats
}

// Snapshot builds a snapshot of the current frame: survivors first, then zombies.
func (s *Simulation) Snapshot() Snapshot {
	zombies := s.spawns.Zombies()

	snap := Snapshot{
		Time:     s.sched.Now(),
		Frame:    s.sched.Frame(),
		Width:    s.cfg.Arena.Width,
		Height:   s.cfg.Arena.Height,
		Entities: make([]Entity, 0, len(s.survivors)+len(zombies)),
		Stats:    s.Stats(),
	}

	for _, sv := range s.survivors {
		snap.Entities = append(snap.Entities, Entity{
			ObjectID:  sv.ObjectID(),
			Kind:      KindSurvivor,
			Name:      sv.Name(),
			Position:  sv.Position(),
			Health:    sv.Health(),
			MaxHealth: sv.MaxHealth(),
			Dead:      sv.IsDead(),
			Hits:      sv.Hits(),
		})
	}

	for _, z := range zombies {
		e := Entity{
			ObjectID:  z.ObjectID(),
			Kind:      KindZombie,
			Name:      z.Name(),
			Position:  z.Position(),
			Health:    z.Health(),
			MaxHealth: z.MaxHealth(),
			Dead:      z.IsDead(),
			Intention: z.Intention(),
			Color:     z.SkinColor(),
		}
		if f, ok := s.spawns.Feedback(z.ObjectID()); ok {
			e.HasTarget = f.HasTarget()
		}
		snap.Entities = append(snap.Entities, e)
	}

	return snap
}
