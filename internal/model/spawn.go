package model

import (
	"slices"
	"time"
)

// Spawn represents a spawn group: a template, a maximum count and respawn timings.
// The zone geometry lives in the spawn package.
type Spawn struct {
	spawnID      int64
	templateName string
	maximumCount int32
	corpseDelay  time.Duration // corpse stays in the arena this long after death
	respawnDelay time.Duration // 0 disables respawn

	zombies []*Zombie
}

// NewSpawn creates a new spawn group.
func NewSpawn(spawnID int64, templateName string, maximumCount int32, corpseDelay, respawnDelay time.Duration) *Spawn {
	return &Spawn{
		spawnID:      spawnID,
		templateName: templateName,
		maximumCount: maximumCount,
		corpseDelay:  corpseDelay,
		respawnDelay: respawnDelay,
		zombies:      make([]*Zombie, 0, maximumCount),
	}
}

// SpawnID returns spawn ID
func (s *Spawn) SpawnID() int64 { return s.spawnID }

// TemplateName returns the zombie template spawned here.
func (s *Spawn) TemplateName() string { return s.templateName }

// MaximumCount returns maximum number of zombies alive or lying as corpses at once.
func (s *Spawn) MaximumCount() int32 { return s.maximumCount }

// CorpseDelay returns how long a corpse stays before removal.
func (s *Spawn) CorpseDelay() time.Duration { return s.corpseDelay }

// RespawnDelay returns delay between corpse removal and the replacement spawn.
func (s *Spawn) RespawnDelay() time.Duration { return s.respawnDelay }

// DoRespawn reports whether the spawn replaces removed zombies.
func (s *Spawn) DoRespawn() bool { return s.respawnDelay > 0 }

// CurrentCount returns number of zombies currently owned by this spawn.
func (s *Spawn) CurrentCount() int32 { return int32(len(s.zombies)) }

// IsFull reports whether the spawn reached its maximum count.
func (s *Spawn) IsFull() bool { return s.CurrentCount() >= s.maximumCount }

// AddZombie adds zombie to the spawn list.
func (s *Spawn) AddZombie(z *Zombie) {
	s.zombies = append(s.zombies, z)
}

// RemoveZombie removes zombie from the spawn list.
func (s *Spawn) RemoveZombie(z *Zombie) {
	s.zombies = slices.DeleteFunc(s.zombies, func(other *Zombie) bool {
		return other.ObjectID() == z.ObjectID()
	})
}

// Zombies returns a copy of the spawn list.
func (s *Spawn) Zombies() []*Zombie {
	return slices.Clone(s.zombies)
}
